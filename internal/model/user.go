package model

import "time"

// User 用户模型（同时也是频道）
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	UserName     string    `gorm:"size:255;not null;uniqueIndex;comment:用户名（全局唯一，存小写）" json:"user_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱（全局唯一）" json:"email"`
	FullName     string    `gorm:"size:255;not null;comment:昵称" json:"full_name"`
	Password     string    `gorm:"size:255;not null;comment:密码哈希" json:"-"` // json:"-" 序列化时忽略密码
	Avatar       string    `gorm:"size:500;not null;comment:头像地址" json:"avatar"`
	CoverImage   string    `gorm:"size:500;comment:频道封面地址" json:"cover_image"`
	RefreshToken string    `gorm:"size:1000;comment:当前有效的刷新令牌" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Videos    []Video    `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
	Tweets    []Tweet    `gorm:"foreignKey:OwnerID" json:"tweets,omitempty"`
	Playlists []Playlist `gorm:"foreignKey:OwnerID" json:"playlists,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// WatchEntry 观看历史记录，自增主键即观看顺序
type WatchEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:观看记录ID" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_watch_entries_user_id;comment:观看用户ID" json:"user_id"`
	VideoID   int64     `gorm:"not null;comment:被观看视频ID" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:观看时间" json:"created_at"`
}

func (WatchEntry) TableName() string {
	return "watch_entries"
}

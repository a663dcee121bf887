package model

import "time"

// 视频状态
const (
	VideoStatusActive   = "active"
	VideoStatusDeleting = "deleting" // 墓碑态，等待 worker 清理媒体文件
)

// Video 视频模型
type Video struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID      int64     `gorm:"not null;index:idx_videos_owner_id;comment:视频作者ID（创建后不可变更）" json:"owner_id"`
	Title        string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description  string    `gorm:"type:text;comment:视频描述" json:"description"`
	VideoURL     string    `gorm:"size:500;not null;comment:视频文件地址" json:"video_url"`
	ThumbnailURL string    `gorm:"size:500;not null;comment:封面缩略图地址" json:"thumbnail_url"`
	Duration     float64   `gorm:"default:0;comment:视频时长（秒）" json:"duration"`
	Views        int64     `gorm:"default:0;comment:播放量" json:"views"`
	IsPublished  bool      `gorm:"default:true;comment:是否对外发布" json:"is_published"`
	Status       string    `gorm:"size:20;not null;default:'active';index:idx_videos_status;comment:视频状态" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Comments []Comment `gorm:"foreignKey:VideoID" json:"comments,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

package model

import "time"

// Tweet 动态模型（频道短文）
type Tweet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:动态ID" json:"id"`
	Content   string    `gorm:"type:text;not null;comment:动态内容" json:"content"`
	OwnerID   int64     `gorm:"not null;index:idx_tweets_owner_id;comment:发布用户ID" json:"owner_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:发布时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Tweet) TableName() string {
	return "tweets"
}

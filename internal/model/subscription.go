package model

import "time"

// Subscription 订阅关系模型（subscriber 订阅 channel，两者都是用户）
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅关系ID" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriptions_subscriber_id;comment:订阅者ID" json:"subscriber_id"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriptions_channel_id;comment:被订阅频道（用户）ID" json:"channel_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

package repository

import (
	"vtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// InsertIfAbsent 条件插入订阅关系。
// 依赖 (subscriber_id, channel_id) 唯一索引，返回 false 表示已订阅。
func (r *SubscriptionRepository) InsertIfAbsent(subscriberID, channelID int64) (bool, error) {
	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除订阅关系，返回是否确有删除
func (r *SubscriptionRepository) Delete(subscriberID, channelID int64) (bool, error) {
	result := r.db.
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查订阅关系是否存在
func (r *SubscriptionRepository) Exists(subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// CountByChannel 统计频道的订阅者数量
func (r *SubscriptionRepository) CountByChannel(channelID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountBySubscriber 统计用户订阅的频道数量
func (r *SubscriptionRepository) CountBySubscriber(subscriberID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// GetSubscriberIDs 按订阅顺序返回频道的订阅者 ID
func (r *SubscriptionRepository) GetSubscriberIDs(channelID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Order("id ASC").
		Pluck("subscriber_id", &ids).Error
	return ids, err
}

// GetChannelIDs 按订阅顺序返回用户订阅的频道 ID
func (r *SubscriptionRepository) GetChannelIDs(subscriberID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Order("id ASC").
		Pluck("channel_id", &ids).Error
	return ids, err
}

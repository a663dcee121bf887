package repository

import (
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// GetByID 根据 ID 获取动态
func (r *TweetRepository) GetByID(id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.db.Where("id = ?", id).First(&tweet).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Create 创建动态
func (r *TweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

// Update 更新动态内容
func (r *TweetRepository) Update(id int64, content string) (*model.Tweet, error) {
	result := r.db.Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除动态
func (r *TweetRepository) Delete(id int64) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&model.Tweet{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByOwner 按发布顺序获取某用户的全部动态（含作者信息）
func (r *TweetRepository) ListByOwner(ownerID int64) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := r.db.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&tweets).Error
	return tweets, err
}

package repository

import (
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// Update 更新评论内容
func (r *CommentRepository) Update(id int64, content string) (*model.Comment, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除评论
func (r *CommentRepository) Delete(id int64) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&model.Comment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByVideo 按发表顺序分页获取某视频的评论（含作者信息）
func (r *CommentRepository) ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Preload("Owner").
		Order("id ASC").
		Offset(skip).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

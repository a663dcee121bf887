package repository

import (
	"vtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// InsertIfAbsent 条件插入点赞记录。
// 依赖 (liked_by, target_kind, target_id) 唯一索引，
// 冲突时不做任何事，返回 false 表示记录已存在。
func (r *LikeRepository) InsertIfAbsent(likedBy int64, targetKind string, targetID int64) (bool, error) {
	like := &model.Like{
		LikedBy:    likedBy,
		TargetKind: targetKind,
		TargetID:   targetID,
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除点赞记录，返回是否确有删除
func (r *LikeRepository) Delete(likedBy int64, targetKind string, targetID int64) (bool, error) {
	result := r.db.
		Where("liked_by = ? AND target_kind = ? AND target_id = ?", likedBy, targetKind, targetID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByTarget 统计某目标的点赞数
func (r *LikeRepository) CountByTarget(targetKind string, targetID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", targetKind, targetID).
		Count(&count).Error
	return count, err
}

// GetLikedVideoIDs 按点赞顺序返回用户点赞过的视频 ID
func (r *LikeRepository) GetLikedVideoIDs(likedBy int64) ([]int64, error) {
	var videoIDs []int64
	err := r.db.Model(&model.Like{}).
		Where("liked_by = ? AND target_kind = ?", likedBy, model.LikeTargetVideo).
		Order("id ASC").
		Pluck("target_id", &videoIDs).Error
	return videoIDs, err
}

// CountByOwner 统计某用户名下所有内容（视频/评论/动态）收到的点赞总数
func (r *LikeRepository) CountByOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Raw(`
		SELECT COUNT(*) FROM likes l
		WHERE (l.target_kind = 'video'   AND l.target_id IN (SELECT id FROM videos   WHERE owner_id = ?))
		   OR (l.target_kind = 'comment' AND l.target_id IN (SELECT id FROM comments WHERE owner_id = ?))
		   OR (l.target_kind = 'tweet'   AND l.target_id IN (SELECT id FROM tweets   WHERE owner_id = ?))
	`, ownerID, ownerID, ownerID).Scan(&count).Error
	return count, err
}

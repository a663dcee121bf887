package repository

import (
	"vtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// GetByID 根据 ID 获取播放列表
func (r *PlaylistRepository) GetByID(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Where("id = ?", id).First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Create 创建播放列表
func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

// Update 更新播放列表字段
func (r *PlaylistRepository) Update(id int64, updates map[string]interface{}) (*model.Playlist, error) {
	result := r.db.Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除播放列表及其关联记录
func (r *PlaylistRepository) Delete(id int64) (bool, error) {
	if err := r.db.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
		return false, err
	}
	result := r.db.Where("id = ?", id).Delete(&model.Playlist{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByOwner 获取某用户的全部播放列表
func (r *PlaylistRepository) ListByOwner(ownerID int64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error
	return playlists, err
}

// AddVideo 条件插入关联记录。
// 依赖 (playlist_id, video_id) 唯一索引，返回 false 表示视频已在列表中。
func (r *PlaylistRepository) AddVideo(playlistID, videoID int64) (bool, error) {
	pv := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(pv)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveVideo 移除关联记录，返回 false 表示视频不在列表中
func (r *PlaylistRepository) RemoveVideo(playlistID, videoID int64) (bool, error) {
	result := r.db.
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetVideoIDs 按加入顺序返回播放列表中的视频 ID
func (r *PlaylistRepository) GetVideoIDs(playlistID int64) ([]int64, error) {
	var videoIDs []int64
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Order("id ASC").
		Pluck("video_id", &videoIDs).Error
	return videoIDs, err
}

package service

import (
	"errors"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound       = errors.New("播放列表不存在")
	ErrPlaylistNoPermission   = errors.New("没有权限操作该播放列表")
	ErrVideoAlreadyInPlaylist = errors.New("视频已在播放列表中")
	ErrVideoNotInPlaylist     = errors.New("视频不在播放列表中")
)

// playlistStore 播放列表及其关联记录的存取，*repository.PlaylistRepository 天然满足
type playlistStore interface {
	GetByID(id int64) (*model.Playlist, error)
	Create(playlist *model.Playlist) error
	Update(id int64, updates map[string]interface{}) (*model.Playlist, error)
	Delete(id int64) (bool, error)
	ListByOwner(ownerID int64) ([]model.Playlist, error)
	AddVideo(playlistID, videoID int64) (bool, error)
	RemoveVideo(playlistID, videoID int64) (bool, error)
	GetVideoIDs(playlistID int64) ([]int64, error)
}

type PlaylistService struct {
	playlistRepo playlistStore
	videoRepo    videoReader
	userRepo     userGetter
}

func NewPlaylistService(playlistRepo playlistStore, videoRepo videoReader, userRepo userGetter) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo, userRepo: userRepo}
}

// Create 创建播放列表
func (s *PlaylistService) Create(currentUserID int64, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	playlist := &model.Playlist{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     currentUserID,
	}

	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}

	return toPlaylistInfo(playlist), nil
}

// GetByID 获取播放列表详情，视频按加入顺序
func (s *PlaylistService) GetByID(playlistID int64) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	videoIDs, err := s.playlistRepo.GetVideoIDs(playlistID)
	if err != nil {
		return nil, err
	}

	videos, err := buildVideosInOrder(s.videoRepo, videoIDs)
	if err != nil {
		return nil, err
	}

	return &dto.PlaylistDetail{
		PlaylistInfo: *toPlaylistInfo(playlist),
		Videos:       videos,
	}, nil
}

// ListByOwner 获取某用户的全部播放列表。用户必须存在，无列表返回空。
func (s *PlaylistService) ListByOwner(ownerID int64) ([]dto.PlaylistInfo, error) {
	if _, err := s.userRepo.GetByID(ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	playlists, err := s.playlistRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		items = append(items, *toPlaylistInfo(&playlists[i]))
	}
	return items, nil
}

// Update 更新播放列表（仅所有者）
func (s *PlaylistService) Update(playlistID, currentUserID int64, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	if err := s.checkOwnership(playlistID, currentUserID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	playlist, err := s.playlistRepo.Update(playlistID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	return toPlaylistInfo(playlist), nil
}

// Delete 删除播放列表及其关联记录（仅所有者）
func (s *PlaylistService) Delete(playlistID, currentUserID int64) error {
	if err := s.checkOwnership(playlistID, currentUserID); err != nil {
		return err
	}

	deleted, err := s.playlistRepo.Delete(playlistID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPlaylistNotFound
	}
	return nil
}

// AddVideo 向播放列表添加视频（仅所有者）。重复添加返回冲突。
func (s *PlaylistService) AddVideo(playlistID, videoID, currentUserID int64) error {
	if err := s.checkOwnership(playlistID, currentUserID); err != nil {
		return err
	}

	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	added, err := s.playlistRepo.AddVideo(playlistID, videoID)
	if err != nil {
		return err
	}
	if !added {
		return ErrVideoAlreadyInPlaylist
	}
	return nil
}

// RemoveVideo 从播放列表移除视频（仅所有者）。视频不在列表中返回未找到。
func (s *PlaylistService) RemoveVideo(playlistID, videoID, currentUserID int64) error {
	if err := s.checkOwnership(playlistID, currentUserID); err != nil {
		return err
	}

	removed, err := s.playlistRepo.RemoveVideo(playlistID, videoID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrVideoNotInPlaylist
	}
	return nil
}

func (s *PlaylistService) checkOwnership(playlistID, currentUserID int64) error {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return err
	}
	if playlist.OwnerID != currentUserID {
		return ErrPlaylistNoPermission
	}
	return nil
}

func toPlaylistInfo(playlist *model.Playlist) *dto.PlaylistInfo {
	return &dto.PlaylistInfo{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		OwnerID:     playlist.OwnerID,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
}

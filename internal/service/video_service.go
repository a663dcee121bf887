package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/config"
	infraKafka "vtube-go/internal/infra/kafka"
	infraMinio "vtube-go/internal/infra/minio"
	infraRedis "vtube-go/internal/infra/redis"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound     = errors.New("视频不存在")
	ErrVideoNoPermission = errors.New("没有权限操作该视频")
	ErrNoFieldsToUpdate  = errors.New("没有需要更新的字段")
)

type VideoService struct {
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
}

func NewVideoService(videoRepo *repository.VideoRepository, userRepo *repository.UserRepository) *VideoService {
	return &VideoService{videoRepo: videoRepo, userRepo: userRepo}
}

// Publish 发布视频：视频文件和缩略图存入 MinIO，记录落库后发事件同步搜索索引
func (s *VideoService) Publish(ownerID int64, req *dto.VideoPublishRequest, videoFile, thumbnail *FileUpload, duration float64) (*dto.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	videoURL, err := uploadMedia(ctx, infraMinio.BucketVideos, ownerID, videoFile)
	if err != nil {
		return nil, fmt.Errorf("上传视频文件失败: %w", err)
	}

	thumbnailURL, err := uploadMedia(ctx, infraMinio.BucketThumbnails, ownerID, thumbnail)
	if err != nil {
		return nil, fmt.Errorf("上传缩略图失败: %w", err)
	}

	video := &model.Video{
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		IsPublished:  true,
		Status:       model.VideoStatusActive,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	s.notifyIndex(video.ID, "indexed")

	logger.Info("Video published",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", ownerID),
	)

	return toVideoInfo(video), nil
}

// GetByID 获取视频详情。
// viewerID > 0 时记观看历史；播放量经 Redis 去重后自增，
// 窗口期内同一用户的重复观看不重复计数。
func (s *VideoService) GetByID(videoID, viewerID int64) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	countView := true
	if viewerID > 0 {
		counted, err := infraRedis.MarkViewed(ctx, viewerID, videoID, config.GetRedis().ViewDedupDuration())
		if err != nil {
			logger.Warn("View dedup check failed, counting view",
				zap.Int64("video_id", videoID), zap.Error(err))
		} else {
			countView = counted
		}

		if err := s.userRepo.AppendWatchEntry(viewerID, videoID); err != nil {
			logger.Warn("Failed to append watch history",
				zap.Int64("user_id", viewerID),
				zap.Int64("video_id", videoID),
				zap.Error(err),
			)
		}
	}

	if countView {
		if err := s.videoRepo.IncrementViews(videoID); err != nil {
			logger.Warn("Failed to increment views",
				zap.Int64("video_id", videoID), zap.Error(err))
		} else {
			video.Views++
		}
	}

	return toVideoInfo(video), nil
}

// List 视频列表（分页、关键字、排序、作者筛选）。
// 仅当作者筛选指向请求者本人时包含未发布视频。
func (s *VideoService) List(req *dto.VideoListRequest, currentUserID int64) (*dto.VideoListData, error) {
	page, limit := normalizePage(req.Page, req.Limit)
	skip := (page - 1) * limit

	publishedOnly := true
	if req.OwnerID != nil && currentUserID > 0 && *req.OwnerID == currentUserID {
		publishedOnly = false
	}

	videos, total, err := s.videoRepo.List(skip, limit, req.OwnerID, req.Query, req.SortBy, req.SortOrder, publishedOnly)
	if err != nil {
		return nil, err
	}

	return buildVideoListData(videos, total, page, limit), nil
}

// Update 更新视频信息（仅作者本人），可附新缩略图替换旧图
func (s *VideoService) Update(videoID, currentUserID int64, req *dto.VideoUpdateRequest, thumbnail *FileUpload) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.OwnerID != currentUserID {
		return nil, ErrVideoNoPermission
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	oldThumbnail := ""
	if thumbnail != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		thumbnailURL, err := uploadMedia(ctx, infraMinio.BucketThumbnails, currentUserID, thumbnail)
		if err != nil {
			return nil, fmt.Errorf("上传缩略图失败: %w", err)
		}
		updates["thumbnail_url"] = thumbnailURL
		oldThumbnail = video.ThumbnailURL
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.videoRepo.Update(videoID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if oldThumbnail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := infraMinio.DeleteByURL(ctx, oldThumbnail); err != nil {
			logger.Warn("Failed to delete old thumbnail",
				zap.Int64("video_id", videoID), zap.Error(err))
		}
	}

	s.notifyIndex(videoID, "indexed")

	return toVideoInfo(updated), nil
}

// Delete 删除视频（仅作者本人）。
// 先打墓碑使记录对 API 不可见，再投递清理任务，
// 媒体文件和数据库记录由 worker 异步清理。
func (s *VideoService) Delete(videoID, currentUserID int64) error {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	if video.OwnerID != currentUserID {
		return ErrVideoNoPermission
	}

	if err := s.videoRepo.MarkDeleting(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	task := &infraKafka.CleanupTask{
		VideoID:      videoID,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
	}
	topic := config.GetKafka().Topics["video_cleanup"]
	if err := infraKafka.SendCleanupTask(ctx, topic, task); err != nil {
		// 墓碑已生效，清理任务丢失只影响存储回收，记录留待人工补偿
		logger.Error("Send cleanup task failed",
			zap.Int64("video_id", videoID), zap.Error(err))
	}

	s.notifyIndex(videoID, "removed")

	return nil
}

// TogglePublish 切换视频发布状态（仅作者本人）
func (s *VideoService) TogglePublish(videoID, currentUserID int64) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.OwnerID != currentUserID {
		return nil, ErrVideoNoPermission
	}

	updated, err := s.videoRepo.Update(videoID, map[string]interface{}{
		"is_published": !video.IsPublished,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	s.notifyIndex(videoID, "indexed")

	return toVideoInfo(updated), nil
}

// notifyIndex 发出视频事件，由消费端同步搜索索引。失败只记日志。
func (s *VideoService) notifyIndex(videoID int64, action string) {
	topic := config.GetKafka().Topics["video_events"]
	if topic == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := &infraKafka.VideoEvent{VideoID: videoID, Action: action}
	if err := infraKafka.SendVideoEvent(ctx, topic, event); err != nil {
		logger.Warn("Send video event failed",
			zap.Int64("video_id", videoID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// uploadMedia 上传媒体文件到指定 Bucket，对象名按作者分目录
func uploadMedia(ctx context.Context, bucket string, ownerID int64, file *FileUpload) (string, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	objectName := fmt.Sprintf("%d/%d%s", ownerID, time.Now().UnixNano(), ext)
	return infraMinio.UploadFile(ctx, bucket, objectName, file.Reader, file.Size, file.ContentType)
}

// normalizePage 分页参数兜底：page 默认 1，limit 默认 10、上限 50
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	return page, limit
}

// toVideoInfo 将 model.Video 转换为 dto.VideoInfo
func toVideoInfo(video *model.Video) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:           video.ID,
		OwnerID:      video.OwnerID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		Views:        video.Views,
		IsPublished:  video.IsPublished,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
		Owner:        toOwnerBrief(&video.Owner),
	}
}

func buildVideoListData(videos []model.Video, total int64, page, limit int) *dto.VideoListData {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i]))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &dto.VideoListData{
		Videos:     items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// videoBatchGetter 按 ID 批量取视频，*repository.VideoRepository 天然满足
type videoBatchGetter interface {
	GetByIDs(ids []int64) ([]model.Video, error)
}

type videoGetter interface {
	GetByID(id int64) (*model.Video, error)
}

type videoReader interface {
	videoGetter
	videoBatchGetter
}

// buildVideosInOrder 按给定 ID 顺序组装视频列表（观看历史、点赞列表、播放列表共用）。
// 批量查询结果不保证顺序，这里按输入顺序重排，查不到的 ID 静默跳过。
func buildVideosInOrder(videoRepo videoBatchGetter, videoIDs []int64) ([]dto.VideoInfo, error) {
	if len(videoIDs) == 0 {
		return []dto.VideoInfo{}, nil
	}

	videos, err := videoRepo.GetByIDs(videoIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}

	items := make([]dto.VideoInfo, 0, len(videoIDs))
	for _, id := range videoIDs {
		if video, ok := byID[id]; ok {
			items = append(items, *toVideoInfo(video))
		}
	}
	return items, nil
}

package service

import (
	"errors"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/repository"

	"gorm.io/gorm"
)

type DashboardService struct {
	videoRepo *repository.VideoRepository
	subRepo   *repository.SubscriptionRepository
	likeRepo  *repository.LikeRepository
	userRepo  *repository.UserRepository
}

func NewDashboardService(videoRepo *repository.VideoRepository, subRepo *repository.SubscriptionRepository, likeRepo *repository.LikeRepository, userRepo *repository.UserRepository) *DashboardService {
	return &DashboardService{videoRepo: videoRepo, subRepo: subRepo, likeRepo: likeRepo, userRepo: userRepo}
}

// GetChannelStats 获取频道统计。新频道所有计数为 0，不是错误。
func (s *DashboardService) GetChannelStats(channelID int64) (*dto.ChannelStats, error) {
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	agg, err := s.videoRepo.AggregateByOwner(channelID)
	if err != nil {
		return nil, err
	}

	totalSubs, err := s.subRepo.CountByChannel(channelID)
	if err != nil {
		return nil, err
	}

	totalLikes, err := s.likeRepo.CountByOwner(channelID)
	if err != nil {
		return nil, err
	}

	return &dto.ChannelStats{
		Views:      agg.TotalViews,
		Videos:     agg.TotalVideos,
		TotalSubs:  totalSubs,
		TotalLikes: totalLikes,
	}, nil
}

// GetChannelVideos 获取频道的全部视频（含未发布，频道后台用）
func (s *DashboardService) GetChannelVideos(channelID int64) ([]dto.VideoInfo, error) {
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	videos, err := s.videoRepo.ListByOwner(channelID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i]))
	}
	return items, nil
}

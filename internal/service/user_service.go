package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vtube-go/internal/api/dto"
	infraMinio "vtube-go/internal/infra/minio"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type userGetter interface {
	GetByID(id int64) (*model.User, error)
}

type UserService struct {
	userRepo  *repository.UserRepository
	videoRepo *repository.VideoRepository
	subRepo   *repository.SubscriptionRepository
}

func NewUserService(userRepo *repository.UserRepository, videoRepo *repository.VideoRepository, subRepo *repository.SubscriptionRepository) *UserService {
	return &UserService{userRepo: userRepo, videoRepo: videoRepo, subRepo: subRepo}
}

// UpdateAccount 更新账号资料（昵称/邮箱/用户名，至少一项）
func (s *UserService) UpdateAccount(userID int64, req *dto.UpdateAccountRequest) (*dto.UserInfo, error) {
	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Username != nil {
		updates["user_name"] = strings.ToLower(*req.Username)
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return toUserInfo(user), nil
}

// UpdateAvatar 更换头像，旧头像异步清理
func (s *UserService) UpdateAvatar(userID int64, file *FileUpload) (*dto.UserInfo, error) {
	return s.replaceImage(userID, infraMinio.BucketAvatars, "avatar", file)
}

// UpdateCoverImage 更换频道封面
func (s *UserService) UpdateCoverImage(userID int64, file *FileUpload) (*dto.UserInfo, error) {
	return s.replaceImage(userID, infraMinio.BucketCovers, "cover_image", file)
}

func (s *UserService) replaceImage(userID int64, bucket, column string, file *FileUpload) (*dto.UserInfo, error) {
	old, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	url, err := uploadImage(ctx, bucket, userID, file)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(userID, map[string]interface{}{column: url})
	if err != nil {
		return nil, err
	}

	oldURL := old.Avatar
	if column == "cover_image" {
		oldURL = old.CoverImage
	}
	if oldURL != "" {
		if err := infraMinio.DeleteByURL(ctx, oldURL); err != nil {
			logger.Warn("Failed to delete old image",
				zap.Int64("user_id", userID),
				zap.String("url", oldURL),
				zap.Error(err),
			)
		}
	}

	return toUserInfo(user), nil
}

// GetChannelProfile 获取频道主页视图。
// isSubscribed 以 viewerID 为准，未登录时恒为 false。
func (s *UserService) GetChannelProfile(username string, viewerID int64) (*dto.ChannelProfile, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscribers, err := s.subRepo.CountByChannel(user.ID)
	if err != nil {
		return nil, err
	}

	subscribedTo, err := s.subRepo.CountBySubscriber(user.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID > 0 {
		isSubscribed, err = s.subRepo.Exists(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ChannelProfile{
		ID:                user.ID,
		FullName:          user.FullName,
		Username:          user.UserName,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
		Avatar:            user.Avatar,
		CoverImage:        user.CoverImage,
		Email:             user.Email,
	}, nil
}

// GetWatchHistory 获取观看历史，按观看顺序返回。
// 已删除或墓碑态的视频自动跳过，空历史返回空列表。
func (s *UserService) GetWatchHistory(userID int64) (*dto.WatchHistoryData, error) {
	videoIDs, err := s.userRepo.GetWatchVideoIDs(userID)
	if err != nil {
		return nil, err
	}

	videos, err := buildVideosInOrder(s.videoRepo, videoIDs)
	if err != nil {
		return nil, err
	}

	return &dto.WatchHistoryData{
		Videos: videos,
		Total:  len(videos),
	}, nil
}

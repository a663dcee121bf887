package service

import (
	"errors"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

var ErrCannotSubscribeSelf = errors.New("不能订阅自己的频道")

// subscriptionStore 订阅关系存取，*repository.SubscriptionRepository 天然满足
type subscriptionStore interface {
	InsertIfAbsent(subscriberID, channelID int64) (bool, error)
	Delete(subscriberID, channelID int64) (bool, error)
	CountByChannel(channelID int64) (int64, error)
	GetSubscriberIDs(channelID int64) ([]int64, error)
	GetChannelIDs(subscriberID int64) ([]int64, error)
}

type subscriptionUserStore interface {
	GetByID(id int64) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByIDs(ids []int64) ([]model.User, error)
}

type SubscriptionService struct {
	subRepo  subscriptionStore
	userRepo subscriptionUserStore
}

func NewSubscriptionService(subRepo subscriptionStore, userRepo subscriptionUserStore) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle 切换订阅状态。频道必须存在，且不能订阅自己。
// 条件插入 + 唯一索引保证并发下至多一条订阅关系。
func (s *SubscriptionService) Toggle(channelID, subscriberID int64) (*dto.ToggleResult, error) {
	if channelID == subscriberID {
		return nil, ErrCannotSubscribeSelf
	}

	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	inserted, err := s.subRepo.InsertIfAbsent(subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	state := "subscribed"
	if !inserted {
		if _, err := s.subRepo.Delete(subscriberID, channelID); err != nil {
			return nil, err
		}
		state = "unsubscribed"
	}

	total, err := s.subRepo.CountByChannel(channelID)
	if err != nil {
		return nil, err
	}

	return &dto.ToggleResult{State: state, Total: total}, nil
}

// GetChannelSubscribers 按频道用户名获取订阅者列表，按订阅顺序。无订阅者返回空列表。
func (s *SubscriptionService) GetChannelSubscribers(username string) (*dto.SubscriberListData, error) {
	channel, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscriberIDs, err := s.subRepo.GetSubscriberIDs(channel.ID)
	if err != nil {
		return nil, err
	}

	briefs, err := s.buildChannelBriefs(subscriberIDs)
	if err != nil {
		return nil, err
	}

	return &dto.SubscriberListData{
		Subscribers:      briefs,
		TotalSubscribers: int64(len(briefs)),
	}, nil
}

// GetSubscribedChannels 获取用户订阅的频道列表，按订阅顺序。无订阅返回空列表。
func (s *SubscriptionService) GetSubscribedChannels(subscriberID int64) (*dto.SubscribedChannelsData, error) {
	if _, err := s.userRepo.GetByID(subscriberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	channelIDs, err := s.subRepo.GetChannelIDs(subscriberID)
	if err != nil {
		return nil, err
	}

	briefs, err := s.buildChannelBriefs(channelIDs)
	if err != nil {
		return nil, err
	}

	return &dto.SubscribedChannelsData{
		Channels:      briefs,
		TotalChannels: int64(len(briefs)),
	}, nil
}

// buildChannelBriefs 按给定 ID 顺序组装用户投影，查不到的 ID 静默跳过
func (s *SubscriptionService) buildChannelBriefs(userIDs []int64) ([]dto.ChannelBrief, error) {
	if len(userIDs) == 0 {
		return []dto.ChannelBrief{}, nil
	}

	users, err := s.userRepo.GetByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	briefs := make([]dto.ChannelBrief, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := byID[id]; ok {
			briefs = append(briefs, dto.ChannelBrief{
				ID:       user.ID,
				Username: user.UserName,
				FullName: user.FullName,
				Avatar:   user.Avatar,
			})
		}
	}
	return briefs, nil
}

package service

import (
	"errors"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

var (
	ErrTweetNotFound     = errors.New("动态不存在")
	ErrTweetNoPermission = errors.New("没有权限操作该动态")
)

// tweetStore 动态存取，*repository.TweetRepository 天然满足
type tweetStore interface {
	GetByID(id int64) (*model.Tweet, error)
	Create(tweet *model.Tweet) error
	Update(id int64, content string) (*model.Tweet, error)
	Delete(id int64) (bool, error)
	ListByOwner(ownerID int64) ([]model.Tweet, error)
}

type TweetService struct {
	tweetRepo tweetStore
	userRepo  userGetter
}

func NewTweetService(tweetRepo tweetStore, userRepo userGetter) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

// Create 发布动态
func (s *TweetService) Create(currentUserID int64, req *dto.TweetCreateRequest) (*dto.TweetInfo, error) {
	tweet := &model.Tweet{
		Content: req.Content,
		OwnerID: currentUserID,
	}

	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(currentUserID)
	if err == nil {
		tweet.Owner = *owner
	}

	return toTweetInfo(tweet), nil
}

// Update 更新动态内容（仅作者本人）
func (s *TweetService) Update(tweetID, currentUserID int64, req *dto.TweetUpdateRequest) (*dto.TweetInfo, error) {
	tweet, err := s.tweetRepo.GetByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	if tweet.OwnerID != currentUserID {
		return nil, ErrTweetNoPermission
	}

	updated, err := s.tweetRepo.Update(tweetID, req.Content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}

	return toTweetInfo(updated), nil
}

// Delete 删除动态（仅作者本人）
func (s *TweetService) Delete(tweetID, currentUserID int64) error {
	tweet, err := s.tweetRepo.GetByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return err
	}
	if tweet.OwnerID != currentUserID {
		return ErrTweetNoPermission
	}

	deleted, err := s.tweetRepo.Delete(tweetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTweetNotFound
	}
	return nil
}

// ListByOwner 获取某用户的全部动态，按发布顺序。用户必须存在，无动态返回空列表。
func (s *TweetService) ListByOwner(ownerID int64) ([]dto.TweetInfo, error) {
	if _, err := s.userRepo.GetByID(ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tweets, err := s.tweetRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TweetInfo, 0, len(tweets))
	for i := range tweets {
		items = append(items, *toTweetInfo(&tweets[i]))
	}
	return items, nil
}

func toTweetInfo(tweet *model.Tweet) *dto.TweetInfo {
	return &dto.TweetInfo{
		ID:        tweet.ID,
		Content:   tweet.Content,
		OwnerID:   tweet.OwnerID,
		CreatedAt: tweet.CreatedAt,
		Owner:     toOwnerBrief(&tweet.Owner),
	}
}

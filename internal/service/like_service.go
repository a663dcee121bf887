package service

import (
	"errors"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"

	"gorm.io/gorm"
)

// likeStore 点赞关系存取，*repository.LikeRepository 天然满足
type likeStore interface {
	InsertIfAbsent(likedBy int64, targetKind string, targetID int64) (bool, error)
	Delete(likedBy int64, targetKind string, targetID int64) (bool, error)
	CountByTarget(targetKind string, targetID int64) (int64, error)
	GetLikedVideoIDs(likedBy int64) ([]int64, error)
}

type LikeService struct {
	likeRepo    likeStore
	videoRepo   videoReader
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
}

func NewLikeService(likeRepo likeStore, videoRepo videoReader, commentRepo *repository.CommentRepository, tweetRepo *repository.TweetRepository) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// ToggleVideoLike 切换视频点赞状态
func (s *LikeService) ToggleVideoLike(videoID, currentUserID int64) (*dto.ToggleResult, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return s.toggle(currentUserID, model.LikeTargetVideo, videoID)
}

// ToggleCommentLike 切换评论点赞状态
func (s *LikeService) ToggleCommentLike(commentID, currentUserID int64) (*dto.ToggleResult, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return s.toggle(currentUserID, model.LikeTargetComment, commentID)
}

// ToggleTweetLike 切换动态点赞状态
func (s *LikeService) ToggleTweetLike(tweetID, currentUserID int64) (*dto.ToggleResult, error) {
	if _, err := s.tweetRepo.GetByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return s.toggle(currentUserID, model.LikeTargetTweet, tweetID)
}

// toggle 条件插入，冲突说明已点赞则转为删除。
// 唯一索引保证并发下同一用户对同一目标至多一条记录。
func (s *LikeService) toggle(userID int64, targetKind string, targetID int64) (*dto.ToggleResult, error) {
	inserted, err := s.likeRepo.InsertIfAbsent(userID, targetKind, targetID)
	if err != nil {
		return nil, err
	}

	state := "liked"
	if !inserted {
		if _, err := s.likeRepo.Delete(userID, targetKind, targetID); err != nil {
			return nil, err
		}
		state = "unliked"
	}

	total, err := s.likeRepo.CountByTarget(targetKind, targetID)
	if err != nil {
		return nil, err
	}

	return &dto.ToggleResult{State: state, Total: total}, nil
}

// GetLikedVideos 获取用户点赞过的视频，按点赞顺序。
// 已删除的视频自动跳过，无点赞返回空列表。
func (s *LikeService) GetLikedVideos(userID int64) (*dto.LikedVideosData, error) {
	videoIDs, err := s.likeRepo.GetLikedVideoIDs(userID)
	if err != nil {
		return nil, err
	}

	videos, err := buildVideosInOrder(s.videoRepo, videoIDs)
	if err != nil {
		return nil, err
	}

	return &dto.LikedVideosData{
		Videos: videos,
		Total:  len(videos),
	}, nil
}

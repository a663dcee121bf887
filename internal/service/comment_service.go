package service

import (
	"errors"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentNoPermission = errors.New("没有权限操作该评论")
)

// commentStore 评论存取，*repository.CommentRepository 天然满足
type commentStore interface {
	GetByID(id int64) (*model.Comment, error)
	Create(comment *model.Comment) error
	Update(id int64, content string) (*model.Comment, error)
	Delete(id int64) (bool, error)
	ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error)
}

type CommentService struct {
	commentRepo commentStore
	videoRepo   videoGetter
	userRepo    userGetter
}

func NewCommentService(commentRepo commentStore, videoRepo videoGetter, userRepo userGetter) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, userRepo: userRepo}
}

// Create 在视频下发表评论，视频必须存在且未删除
func (s *CommentService) Create(videoID, currentUserID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		Content: req.Content,
		VideoID: videoID,
		OwnerID: currentUserID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(currentUserID)
	if err == nil {
		comment.Owner = *owner
	}

	return toCommentInfo(comment), nil
}

// Update 更新评论内容（仅评论作者本人）
func (s *CommentService) Update(commentID, currentUserID int64, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.OwnerID != currentUserID {
		return nil, ErrCommentNoPermission
	}

	updated, err := s.commentRepo.Update(commentID, req.Content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return toCommentInfo(updated), nil
}

// Delete 删除评论（仅评论作者本人）
func (s *CommentService) Delete(commentID, currentUserID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.OwnerID != currentUserID {
		return ErrCommentNoPermission
	}

	deleted, err := s.commentRepo.Delete(commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}
	return nil
}

// ListByVideo 分页获取视频评论，按发表顺序。无评论返回空列表。
func (s *CommentService) ListByVideo(videoID int64, page, limit int) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	skip := (page - 1) * limit

	comments, total, err := s.commentRepo.ListByVideo(videoID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, *toCommentInfo(&comments[i]))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &dto.CommentListData{
		Comments:   items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func toCommentInfo(comment *model.Comment) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		CreatedBy: toOwnerBrief(&comment.Owner),
	}
}

package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CommentUpdateRequest 更新评论请求
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CommentInfo 评论信息（含作者投影）
type CommentInfo struct {
	ID        int64       `json:"id"`
	VideoID   int64       `json:"video_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	CreatedBy *OwnerBrief `json:"created_by,omitempty"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments   []CommentInfo `json:"comments"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int64         `json:"total_pages"`
}

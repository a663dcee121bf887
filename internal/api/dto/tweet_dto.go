package dto

import "time"

// TweetCreateRequest 发布动态请求
type TweetCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// TweetUpdateRequest 更新动态请求
type TweetUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// TweetInfo 动态信息（含作者投影）
type TweetInfo struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	OwnerID   int64       `json:"owner_id"`
	CreatedAt time.Time   `json:"created_at"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
}

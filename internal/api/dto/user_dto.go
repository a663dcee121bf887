package dto

import "time"

// UserInfo 用户公开信息（不含密码和刷新令牌）
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"user_name"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
}

// OwnerBrief 嵌套在视频/评论中的作者简要信息
type OwnerBrief struct {
	FullName string `json:"full_name"`
	Username string `json:"user_name"`
	Avatar   string `json:"avatar"`
}

// UpdateAccountRequest 更新账号资料请求（至少提供一个字段）
type UpdateAccountRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Username *string `json:"username" binding:"omitempty,min=1,max=255"`
}

// ChannelProfile 频道主页视图
type ChannelProfile struct {
	ID                int64  `json:"id"`
	FullName          string `json:"full_name"`
	Username          string `json:"user_name"`
	SubscribersCount  int64  `json:"subscribers_count"`
	SubscribedToCount int64  `json:"channels_subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"cover_image"`
	Email             string `json:"email"`
}

// WatchHistoryData 观看历史视图（保持观看顺序）
type WatchHistoryData struct {
	Videos []VideoInfo `json:"videos"`
	Total  int         `json:"total"`
}

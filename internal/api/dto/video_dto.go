package dto

import "time"

// VideoPublishRequest 视频发布请求（multipart/form-data，文件另取）
type VideoPublishRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty"`
}

// VideoUpdateRequest 视频更新请求（multipart/form-data，可附新缩略图）
type VideoUpdateRequest struct {
	Title       *string `form:"title" binding:"omitempty,min=1,max=200"`
	Description *string `form:"description"`
}

// VideoListRequest 视频列表查询参数
type VideoListRequest struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Query     string `form:"query"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	OwnerID   *int64 `form:"owner_id"`
}

// VideoInfo 视频详情
type VideoInfo struct {
	ID           int64       `json:"id"`
	OwnerID      int64       `json:"owner_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	VideoURL     string      `json:"video_url"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Duration     float64     `json:"duration"`
	Views        int64       `json:"views"`
	IsPublished  bool        `json:"is_published"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Owner        *OwnerBrief `json:"owner,omitempty"`
}

// VideoListData 视频列表响应数据
type VideoListData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"total_pages"`
}

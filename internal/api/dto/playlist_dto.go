package dto

import "time"

// PlaylistCreateRequest 创建播放列表请求
type PlaylistCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1"`
}

// PlaylistUpdateRequest 更新播放列表请求（至少提供一个字段）
type PlaylistUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1"`
}

// PlaylistInfo 播放列表信息
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistDetail 播放列表详情（视频按加入顺序）
type PlaylistDetail struct {
	PlaylistInfo
	Videos []VideoInfo `json:"videos"`
}

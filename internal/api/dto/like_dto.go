package dto

// ToggleResult 切换类操作（点赞/订阅）的结果
type ToggleResult struct {
	State string `json:"state"` // liked/unliked 或 subscribed/unsubscribed
	Total int64  `json:"total"`
}

// LikedVideosData 用户点赞过的视频列表（保持点赞顺序）
type LikedVideosData struct {
	Videos []VideoInfo `json:"videos"`
	Total  int         `json:"total"`
}

package dto

// SearchVideoRequest 视频搜索请求
type SearchVideoRequest struct {
	Keyword string `form:"keyword" binding:"required,min=1,max=100"`
	Page    int    `form:"page,default=1" binding:"min=1"`
	Limit   int    `form:"limit,default=10" binding:"min=1,max=50"`
}

// SearchVideoData 视频搜索响应
type SearchVideoData struct {
	Videos  []VideoInfo `json:"videos"`
	Total   int64       `json:"total"`
	Keyword string      `json:"keyword"`
	Source  string      `json:"source"` // elasticsearch / database
}

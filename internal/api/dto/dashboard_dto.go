package dto

// ChannelStats 频道统计视图。所有计数在无数据时为 0，不是错误。
type ChannelStats struct {
	Views      int64 `json:"views"`
	Videos     int64 `json:"videos"`
	TotalSubs  int64 `json:"total_subs"`
	TotalLikes int64 `json:"total_likes"`
}

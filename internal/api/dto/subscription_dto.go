package dto

// ChannelBrief 订阅列表中的用户/频道投影
type ChannelBrief struct {
	ID       int64  `json:"id"`
	Username string `json:"user_name"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// SubscriberListData 频道的订阅者列表
type SubscriberListData struct {
	Subscribers      []ChannelBrief `json:"subscribers"`
	TotalSubscribers int64          `json:"total_subscribers"`
}

// SubscribedChannelsData 用户订阅的频道列表
type SubscribedChannelsData struct {
	Channels      []ChannelBrief `json:"channels"`
	TotalChannels int64          `json:"total_channels"`
}

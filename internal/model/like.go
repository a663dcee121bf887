package model

import "time"

// 点赞目标类型
const (
	LikeTargetVideo   = "video"
	LikeTargetComment = "comment"
	LikeTargetTweet   = "tweet"
)

// Like 点赞模型。
// 目标用 (target_kind, target_id) 标记联合表示，
// 唯一索引保证同一用户对同一目标至多一条记录。
type Like struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	LikedBy    int64     `gorm:"not null;uniqueIndex:uq_likes_by_target;index:idx_likes_liked_by;comment:点赞用户ID" json:"liked_by"`
	TargetKind string    `gorm:"size:20;not null;uniqueIndex:uq_likes_by_target;comment:目标类型 video/comment/tweet" json:"target_kind"`
	TargetID   int64     `gorm:"not null;uniqueIndex:uq_likes_by_target;index:idx_likes_target_id;comment:目标ID" json:"target_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

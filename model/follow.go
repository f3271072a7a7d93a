package model

import "time"

// Follow is one directed edge of the follow graph. The composite unique
// index doubles as duplicate detection under concurrent inserts.
type Follow struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	FollowerID uint64    `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FolloweeID uint64    `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

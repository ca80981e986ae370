package models

import "time"

// Follow is a directed edge recording that one user follows another. The pair
// is unique so re-following cannot create duplicate edges.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"uniqueIndex:idx_follow_pair;not null" json:"follower_id"`
	FollowedID uint      `gorm:"uniqueIndex:idx_follow_pair;index;not null" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

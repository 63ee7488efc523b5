package models

import "time"

// Follow represents a follow relationship from follower to following.
// StatusID drives content visibility: only an accepted follow grants access
// to a private account's posts. Unfollow deletes the row.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false" json:"following_id"`
	Follower    *User     `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following   *User     `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
	StatusID    uint      `gorm:"not null;default:1;index" json:"status_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}

// FollowStats aggregates follower and following counts for one user.
type FollowStats struct {
	UserID         uint  `json:"user_id"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	PendingCount   int64 `json:"pending_count"`
}

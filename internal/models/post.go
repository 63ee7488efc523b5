package models

import "time"

// Post represents a user post, optionally published into a community.
// A database CHECK constraint requires content or media_url to be present;
// search_vector upkeep and cascade cleanup of likes and comments on delete
// are handled by triggers.
type Post struct {
	ID          uint       `gorm:"primaryKey;column:post_id" json:"post_id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CommunityID *uint      `gorm:"index" json:"community_id,omitempty"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	Content     *string    `gorm:"type:text" json:"content"`
	MediaURL    *string    `gorm:"size:512" json:"media_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"like_count"`
	// CommentCount is not persisted; computed at query time
	CommentCount int `gorm:"->" json:"comment_count"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// PostLike records that a user liked a post, at most once per pair.
type PostLike struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (PostLike) TableName() string {
	return "post_likes"
}

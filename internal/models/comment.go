package models

import "time"

// Comment represents a comment on a post. ParentCommentID forms an
// arbitrary-depth reply tree; replies cascade away with their parent.
// A CHECK constraint rejects whitespace-only content.
type Comment struct {
	ID              uint       `gorm:"primaryKey;column:comment_id" json:"comment_id"`
	PostID          uint       `gorm:"not null;index" json:"post_id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uint      `gorm:"index" json:"parent_comment_id,omitempty"`
	Parent          *Comment   `gorm:"foreignKey:ParentCommentID" json:"-"`
	Replies         []*Comment `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}

// CommentThreadEntry is one row of the get_comment_thread routine: the
// comment plus its computed depth (root = 0) and parent linkage, ordered so
// parents precede their children.
type CommentThreadEntry struct {
	CommentID       uint      `json:"comment_id"`
	ParentCommentID *uint     `json:"parent_comment_id,omitempty"`
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	Content         string    `json:"content"`
	Depth           int       `json:"depth"`
	CreatedAt       time.Time `json:"created_at"`
}

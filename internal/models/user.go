// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an application user. The search_vector column is derived
// and maintained by a database trigger; it is deliberately not mapped here.
type User struct {
	ID           uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Bio          string    `gorm:"type:text" json:"bio"`
	AvatarURL    string    `gorm:"column:profile_picture_url;size:512" json:"profile_picture_url"`
	IsPrivate    bool      `gorm:"not null;default:false" json:"is_private"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// UserSearchResult is one row returned by the search_users routines,
// ranked by full-text relevance.
type UserSearchResult struct {
	UserID   uint    `json:"user_id"`
	Username string  `json:"username"`
	Bio      string  `json:"bio"`
	Rank     float64 `json:"rank"`
}

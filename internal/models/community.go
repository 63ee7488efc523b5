package models

import "time"

// Community represents a user community. CreatorID is a lookup back-reference
// only; once other admins exist the creator holds no special authority.
type Community struct {
	ID          uint      `gorm:"primaryKey;column:community_id" json:"community_id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint      `gorm:"not null" json:"creator_id"`
	Creator     *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	PrivacyID   uint      `gorm:"not null;default:1" json:"privacy_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Community) TableName() string {
	return "communities"
}

// CommunityMember maps users to communities and tracks role.
type CommunityMember struct {
	CommunityID uint      `gorm:"primaryKey;autoIncrement:false" json:"community_id"`
	UserID      uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RoleID      uint      `gorm:"not null;default:3" json:"role_id"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// TableName specifies the table name for GORM.
func (CommunityMember) TableName() string {
	return "community_members"
}

// CommunityCreationResult is the row returned by create_community_with_admin.
type CommunityCreationResult struct {
	CommunityID   uint   `json:"community_id"`
	CommunityName string `json:"community_name"`
	Status        string `json:"status"`
}

// CommunityStatistics is one row of community_statistics_view.
type CommunityStatistics struct {
	CommunityID     uint   `json:"community_id"`
	CommunityName   string `json:"community_name"`
	CreatorUsername string `json:"creator_username"`
	MemberCount     int    `json:"member_count"`
	PostCount       int    `json:"post_count"`
}

package models

// Fixed lookup rows are seeded by the schema migration; the IDs below are
// stable and referenced by foreign key throughout the schema.

// Community member roles.
const (
	RoleAdmin     uint = 1
	RoleModerator uint = 2
	RoleMember    uint = 3
)

// Community privacy types.
const (
	PrivacyPublic  uint = 1
	PrivacyPrivate uint = 2
)

// Follow request states.
const (
	FollowStatusPending  uint = 1
	FollowStatusAccepted uint = 2
	FollowStatusRejected uint = 3
)

// Role is a community member role lookup row.
type Role struct {
	ID   uint   `gorm:"primaryKey;column:role_id" json:"role_id"`
	Name string `gorm:"column:role_name;size:50;not null;uniqueIndex" json:"role_name"`
}

// TableName specifies the table name for GORM.
func (Role) TableName() string {
	return "roles"
}

// PrivacyType is a community privacy lookup row.
type PrivacyType struct {
	ID   uint   `gorm:"primaryKey;column:privacy_id" json:"privacy_id"`
	Name string `gorm:"column:privacy_name;size:50;not null;uniqueIndex" json:"privacy_name"`
}

// TableName specifies the table name for GORM.
func (PrivacyType) TableName() string {
	return "privacy_types"
}

// FollowStatus is a follow request state lookup row.
type FollowStatus struct {
	ID   uint   `gorm:"primaryKey;column:status_id" json:"status_id"`
	Name string `gorm:"column:status_name;size:50;not null;uniqueIndex" json:"status_name"`
}

// TableName specifies the table name for GORM.
func (FollowStatus) TableName() string {
	return "follow_status"
}

package models

import "time"

// AuditLog is an append-only record of destructive operations. Rows are
// written by database triggers in the same transaction as the delete;
// application code only ever reads this table.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey;column:audit_id" json:"audit_id"`
	Table      string    `gorm:"size:100;not null;column:table_name" json:"table_name"`
	Operation  string    `gorm:"size:20;not null" json:"operation"`
	UserID     *uint     `json:"user_id,omitempty"`
	Username   string    `gorm:"size:50" json:"username"`
	Email      string    `gorm:"size:255" json:"email"`
	RecordData string    `gorm:"type:jsonb" json:"record_data"`
	DeletedAt  time.Time `gorm:"autoCreateTime;column:deleted_at" json:"deleted_at"`
}

// TableName specifies the table name for GORM.
func (AuditLog) TableName() string {
	return "audit_log"
}

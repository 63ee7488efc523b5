package repository

import (
	"context"

	"agora/internal/models"

	"gorm.io/gorm"
)

// AuditRepository reads the audit trail. Rows are written only by database
// triggers; nothing in the application inserts here.
type AuditRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository returns a new AuditRepository implementation.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) ListByUser(ctx context.Context, userID uint) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("deleted_at DESC").
		Find(&logs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	if err := r.db.WithContext(ctx).
		Order("deleted_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

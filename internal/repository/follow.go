package repository

import (
	"context"
	"errors"

	"agora/internal/cache"
	"agora/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Get(ctx context.Context, followerID, followingID uint) (*models.Follow, error)
	UpdateStatus(ctx context.Context, followerID, followingID, statusID uint) error
	Delete(ctx context.Context, followerID, followingID uint) error
	ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	ListPending(ctx context.Context, userID uint) ([]models.User, error)
	Stats(ctx context.Context, userID uint) (*models.FollowStats, error)
	IsAcceptedFollower(ctx context.Context, followerID, followingID uint) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		return translateWriteError(err, "Follow relationship already exists")
	}
	return nil
}

func (r *followRepository) Get(ctx context.Context, followerID, followingID uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &follow, nil
}

func (r *followRepository) UpdateStatus(ctx context.Context, followerID, followingID, statusID uint) error {
	result := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Update("status_id", statusID)
	if result.Error != nil {
		return translateWriteError(result.Error, "Follow relationship already exists")
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", followerID)
	}
	// Acceptance changes what the follower's feed contains.
	if statusID == models.FollowStatusAccepted {
		cache.InvalidateFeed(ctx, followerID)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", followerID)
	}
	cache.InvalidateFeed(ctx, followerID)
	return nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows f ON f.follower_id = users.user_id").
		Where("f.following_id = ? AND f.status_id = ?", userID, models.FollowStatusAccepted).
		Order("f.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows f ON f.following_id = users.user_id").
		Where("f.follower_id = ? AND f.status_id = ?", userID, models.FollowStatusAccepted).
		Order("f.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// ListPending returns users whose follow requests to userID await a decision.
func (r *followRepository) ListPending(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows f ON f.follower_id = users.user_id").
		Where("f.following_id = ? AND f.status_id = ?", userID, models.FollowStatusPending).
		Order("f.created_at ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Stats(ctx context.Context, userID uint) (*models.FollowStats, error) {
	stats := models.FollowStats{UserID: userID}
	err := r.db.WithContext(ctx).
		Raw(`SELECT
		       (SELECT COUNT(*) FROM follows WHERE following_id = ? AND status_id = ?) AS follower_count,
		       (SELECT COUNT(*) FROM follows WHERE follower_id = ? AND status_id = ?) AS following_count,
		       (SELECT COUNT(*) FROM follows WHERE following_id = ? AND status_id = ?) AS pending_count`,
			userID, models.FollowStatusAccepted,
			userID, models.FollowStatusAccepted,
			userID, models.FollowStatusPending).
		Scan(&stats).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}

func (r *followRepository) IsAcceptedFollower(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status_id = ?",
			followerID, followingID, models.FollowStatusAccepted).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

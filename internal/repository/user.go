package repository

import (
	"context"
	"errors"

	"agora/internal/cache"
	"agora/internal/models"
	"agora/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Search(ctx context.Context, term string, limit int) ([]models.UserSearchResult, error)
	SearchTurkish(ctx context.Context, term string) ([]models.UserSearchResult, error)
	Recommendations(ctx context.Context, userID uint, limit int) ([]models.Recommendation, error)
	ActivityRanking(ctx context.Context) ([]models.ActivityRank, error)
	ActiveUsers(ctx context.Context, limit int) ([]models.ActiveUser, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateWriteError(err, "Username or email already taken")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	// updated_at is overwritten by the database trigger regardless of the
	// value carried here.
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":            user.Username,
			"email":               user.Email,
			"bio":                 user.Bio,
			"profile_picture_url": user.AvatarURL,
			"is_private":          user.IsPrivate,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "Username or email already taken")
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", user.ID)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// Delete removes the user row. The audit trigger captures the row snapshot
// and the FK cascades remove authored content in the same transaction.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	// The delete trigger snapshots the row into audit_log.
	observability.AuditRowsWritten.WithLabelValues("Users").Inc()
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("user_id ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Search(ctx context.Context, term string, limit int) ([]models.UserSearchResult, error) {
	var results []models.UserSearchResult
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM search_users(?, ?, ?)", term, "bilingual_tr_en", limit).
		Scan(&results).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return results, nil
}

func (r *userRepository) SearchTurkish(ctx context.Context, term string) ([]models.UserSearchResult, error) {
	var results []models.UserSearchResult
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM search_users_turkish(?)", term).
		Scan(&results).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return results, nil
}

func (r *userRepository) Recommendations(ctx context.Context, userID uint, limit int) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	if err := r.db.WithContext(ctx).
		Raw(`SELECT suggested_user_id AS user_id, suggested_username AS username, mutual_count
		     FROM friend_recommendations_view
		     WHERE user_id = ?
		     ORDER BY mutual_count DESC, suggested_user_id ASC
		     LIMIT ?`, userID, limit).
		Scan(&recs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recs, nil
}

func (r *userRepository) ActivityRanking(ctx context.Context) ([]models.ActivityRank, error) {
	var ranks []models.ActivityRank
	if err := r.db.WithContext(ctx).
		Raw("SELECT user_id, username, total_posts, post_rank FROM user_activity_ranking ORDER BY post_rank ASC").
		Scan(&ranks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ranks, nil
}

func (r *userRepository) ActiveUsers(ctx context.Context, limit int) ([]models.ActiveUser, error) {
	var users []models.ActiveUser
	err := cache.Aside(ctx, cache.ActiveUsersKey, &users, cache.PopularTTL, func() error {
		if err := r.db.WithContext(ctx).
			Raw("SELECT user_id, username, total_activity FROM active_users_view ORDER BY total_activity DESC, user_id ASC LIMIT ?", limit).
			Scan(&users).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

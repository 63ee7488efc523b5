package repository

import (
	"context"
	"errors"

	"agora/internal/models"

	"gorm.io/gorm"
)

// CommunityRepository defines persistence operations for communities and
// their memberships.
type CommunityRepository interface {
	CreateWithAdmin(ctx context.Context, creatorID uint, name, description string, isPrivate bool) (*models.CommunityCreationResult, error)
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	GetByName(ctx context.Context, name string) (*models.Community, error)
	Update(ctx context.Context, community *models.Community) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.Community, error)
	SearchByName(ctx context.Context, term string, limit int) ([]models.Community, error)
	AddMember(ctx context.Context, member *models.CommunityMember) error
	RemoveMember(ctx context.Context, communityID, userID uint) error
	UpdateMemberRole(ctx context.Context, communityID, userID, roleID uint) error
	GetMember(ctx context.Context, communityID, userID uint) (*models.CommunityMember, error)
	ListMembers(ctx context.Context, communityID uint, limit, offset int) ([]models.CommunityMember, error)
	ListUserCommunities(ctx context.Context, userID uint) ([]models.Community, error)
	CountAdmins(ctx context.Context, communityID uint) (int64, error)
	Statistics(ctx context.Context, communityID uint) (*models.CommunityStatistics, error)
	ListStatistics(ctx context.Context, limit, offset int) ([]models.CommunityStatistics, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository returns a new CommunityRepository implementation.
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

// CreateWithAdmin calls the database routine that inserts the community and
// its creator's admin membership in one transaction. Either both rows exist
// afterwards or neither does.
func (r *communityRepository) CreateWithAdmin(ctx context.Context, creatorID uint, name, description string, isPrivate bool) (*models.CommunityCreationResult, error) {
	var result models.CommunityCreationResult
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM create_community_with_admin(?, ?, ?, ?)", creatorID, name, description, isPrivate).
		Scan(&result).Error
	if err != nil {
		return nil, translateWriteError(err, "Community name already taken")
	}
	if result.CommunityID == 0 {
		return nil, models.NewInternalError(errors.New("community creation returned no row"))
	}
	return &result, nil
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.WithContext(ctx).Preload("Creator").First(&community, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Community", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &community, nil
}

func (r *communityRepository) GetByName(ctx context.Context, name string) (*models.Community, error) {
	var community models.Community
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &community, nil
}

func (r *communityRepository) Update(ctx context.Context, community *models.Community) error {
	result := r.db.WithContext(ctx).Model(&models.Community{}).
		Where("community_id = ?", community.ID).
		Updates(map[string]interface{}{
			"name":        community.Name,
			"description": community.Description,
			"privacy_id":  community.PrivacyID,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "Community name already taken")
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Community", community.ID)
	}
	return nil
}

func (r *communityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Community{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Community", id)
	}
	return nil
}

func (r *communityRepository) List(ctx context.Context, limit, offset int) ([]models.Community, error) {
	var communities []models.Community
	if err := r.db.WithContext(ctx).
		Order("community_id ASC").
		Limit(limit).Offset(offset).
		Find(&communities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return communities, nil
}

func (r *communityRepository) SearchByName(ctx context.Context, term string, limit int) ([]models.Community, error) {
	var communities []models.Community
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+term+"%").
		Order("name ASC").
		Limit(limit).
		Find(&communities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return communities, nil
}

func (r *communityRepository) AddMember(ctx context.Context, member *models.CommunityMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return translateWriteError(err, "User is already a member")
	}
	return nil
}

func (r *communityRepository) RemoveMember(ctx context.Context, communityID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&models.CommunityMember{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Membership", userID)
	}
	return nil
}

func (r *communityRepository) UpdateMemberRole(ctx context.Context, communityID, userID, roleID uint) error {
	result := r.db.WithContext(ctx).Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Update("role_id", roleID)
	if result.Error != nil {
		return translateWriteError(result.Error, "Membership already exists")
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Membership", userID)
	}
	return nil
}

func (r *communityRepository) GetMember(ctx context.Context, communityID, userID uint) (*models.CommunityMember, error) {
	var member models.CommunityMember
	if err := r.db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &member, nil
}

func (r *communityRepository) ListMembers(ctx context.Context, communityID uint, limit, offset int) ([]models.CommunityMember, error) {
	var members []models.CommunityMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("community_id = ?", communityID).
		Order("joined_at ASC").
		Limit(limit).Offset(offset).
		Find(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

func (r *communityRepository) ListUserCommunities(ctx context.Context, userID uint) ([]models.Community, error) {
	var communities []models.Community
	if err := r.db.WithContext(ctx).
		Joins("JOIN community_members cm ON cm.community_id = communities.community_id").
		Where("cm.user_id = ?", userID).
		Order("cm.joined_at ASC").
		Find(&communities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return communities, nil
}

func (r *communityRepository) CountAdmins(ctx context.Context, communityID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommunityMember{}).
		Where("community_id = ? AND role_id = ?", communityID, models.RoleAdmin).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *communityRepository) Statistics(ctx context.Context, communityID uint) (*models.CommunityStatistics, error) {
	var stats models.CommunityStatistics
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM community_statistics_view WHERE community_id = ?", communityID).
		Scan(&stats).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if stats.CommunityID == 0 {
		return nil, models.NewNotFoundError("Community", communityID)
	}
	return &stats, nil
}

func (r *communityRepository) ListStatistics(ctx context.Context, limit, offset int) ([]models.CommunityStatistics, error) {
	var stats []models.CommunityStatistics
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM community_statistics_view ORDER BY member_count DESC, community_id ASC LIMIT ? OFFSET ?", limit, offset).
		Scan(&stats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}

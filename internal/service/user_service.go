package service

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type RegisterUserInput struct {
	Username  string
	Email     string
	Password  string
	Bio       string
	IsPrivate bool
}

type UpdateProfileInput struct {
	UserID    uint
	Username  string
	Email     string
	Bio       *string
	AvatarURL *string
	IsPrivate *bool
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	if err := validation.Username(in.Username); err != nil {
		return nil, err
	}
	if err := validation.Email(in.Email); err != nil {
		return nil, err
	}
	if err := validation.Password(in.Password); err != nil {
		return nil, err
	}
	if err := validation.Bio(in.Bio); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Bio:          in.Bio,
		IsPrivate:    in.IsPrivate,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, normalizeLimit(limit), offset)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		if err := validation.Username(in.Username); err != nil {
			return nil, err
		}
		user.Username = in.Username
	}
	if in.Email != "" {
		if err := validation.Email(in.Email); err != nil {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Bio != nil {
		if err := validation.Bio(*in.Bio); err != nil {
			return nil, err
		}
		user.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.IsPrivate != nil {
		user.IsPrivate = *in.IsPrivate
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user. The database captures an audit snapshot
// and cascades authored content away in the same transaction.
func (s *UserService) DeleteAccount(ctx context.Context, requesterID, targetID uint) error {
	if requesterID != targetID {
		return models.NewPermissionError("You can only delete your own account")
	}
	return s.userRepo.Delete(ctx, targetID)
}

// CanViewProfile reports whether viewer may see target's content. Public
// accounts are visible to everyone; private accounts only to themselves and
// their accepted followers.
func (s *UserService) CanViewProfile(ctx context.Context, viewerID uint, target *models.User) (bool, error) {
	if !target.IsPrivate || viewerID == target.ID {
		return true, nil
	}
	return s.followRepo.IsAcceptedFollower(ctx, viewerID, target.ID)
}

func (s *UserService) SearchUsers(ctx context.Context, term string, limit int) ([]models.UserSearchResult, error) {
	term, err := validation.SearchTerm(term)
	if err != nil {
		return nil, err
	}
	return s.userRepo.Search(ctx, term, normalizeLimit(limit))
}

func (s *UserService) SearchUsersTurkish(ctx context.Context, term string) ([]models.UserSearchResult, error) {
	term, err := validation.SearchTerm(term)
	if err != nil {
		return nil, err
	}
	return s.userRepo.SearchTurkish(ctx, term)
}

func (s *UserService) GetRecommendations(ctx context.Context, userID uint, limit int) ([]models.Recommendation, error) {
	return s.userRepo.Recommendations(ctx, userID, normalizeLimit(limit))
}

func (s *UserService) GetActivityRanking(ctx context.Context) ([]models.ActivityRank, error) {
	return s.userRepo.ActivityRanking(ctx)
}

func (s *UserService) GetActiveUsers(ctx context.Context, limit int) ([]models.ActiveUser, error) {
	return s.userRepo.ActiveUsers(ctx, normalizeLimit(limit))
}

const defaultPageSize = 20

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return defaultPageSize
	}
	return limit
}

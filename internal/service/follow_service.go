package service

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow requests to follow target. Public accounts accept immediately;
// private accounts get a pending request. A previously rejected request may
// be re-sent, which resets it to pending.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) (*models.Follow, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	status := models.FollowStatusAccepted
	if target.IsPrivate {
		status = models.FollowStatusPending
	}

	existing, err := s.followRepo.Get(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.StatusID != models.FollowStatusRejected {
			return nil, models.NewConflictError("Follow request already exists")
		}
		if err := s.followRepo.UpdateStatus(ctx, followerID, targetID, status); err != nil {
			return nil, err
		}
		existing.StatusID = status
		return existing, nil
	}

	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: targetID,
		StatusID:    status,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

// Accept approves a pending request. Only the target of the request may
// accept it.
func (s *FollowService) Accept(ctx context.Context, targetID, followerID uint) error {
	follow, err := s.followRepo.Get(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if follow == nil {
		return models.NewNotFoundError("Follow request", followerID)
	}
	if follow.StatusID != models.FollowStatusPending {
		return models.NewValidationError("Follow request is not pending")
	}
	return s.followRepo.UpdateStatus(ctx, followerID, targetID, models.FollowStatusAccepted)
}

// Reject declines a pending request. The rejected row stays so the follower
// can re-request later.
func (s *FollowService) Reject(ctx context.Context, targetID, followerID uint) error {
	follow, err := s.followRepo.Get(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if follow == nil {
		return models.NewNotFoundError("Follow request", followerID)
	}
	if follow.StatusID != models.FollowStatusPending {
		return models.NewValidationError("Follow request is not pending")
	}
	return s.followRepo.UpdateStatus(ctx, followerID, targetID, models.FollowStatusRejected)
}

// Unfollow removes the relationship entirely, whatever its state.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	return s.followRepo.Delete(ctx, followerID, targetID)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followRepo.ListFollowers(ctx, userID, normalizeLimit(limit), offset)
}

func (s *FollowService) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followRepo.ListFollowing(ctx, userID, normalizeLimit(limit), offset)
}

// ListPendingRequests returns users waiting on userID's decision.
func (s *FollowService) ListPendingRequests(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.ListPending(ctx, userID)
}

func (s *FollowService) GetStats(ctx context.Context, userID uint) (*models.FollowStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Stats(ctx, userID)
}

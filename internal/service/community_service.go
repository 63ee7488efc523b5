package service

import (
	"context"
	"strings"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/validation"
)

type CommunityService struct {
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
}

type CreateCommunityInput struct {
	CreatorID   uint
	Name        string
	Description string
	IsPrivate   bool
}

type UpdateCommunityInput struct {
	CommunityID uint
	ActorID     uint
	Name        string
	Description *string
	IsPrivate   *bool
}

func NewCommunityService(communityRepo repository.CommunityRepository, userRepo repository.UserRepository) *CommunityService {
	return &CommunityService{communityRepo: communityRepo, userRepo: userRepo}
}

// CreateCommunity creates the community together with the creator's admin
// membership. The two inserts happen atomically in the database routine, so
// a community is never observable without an admin.
func (s *CommunityService) CreateCommunity(ctx context.Context, in CreateCommunityInput) (*models.CommunityCreationResult, error) {
	name := strings.TrimSpace(in.Name)
	if err := validation.CommunityName(name); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.CreatorID); err != nil {
		return nil, err
	}
	return s.communityRepo.CreateWithAdmin(ctx, in.CreatorID, name, in.Description, in.IsPrivate)
}

func (s *CommunityService) GetCommunity(ctx context.Context, id uint) (*models.Community, error) {
	return s.communityRepo.GetByID(ctx, id)
}

func (s *CommunityService) ListCommunities(ctx context.Context, limit, offset int) ([]models.Community, error) {
	return s.communityRepo.List(ctx, normalizeLimit(limit), offset)
}

func (s *CommunityService) SearchCommunities(ctx context.Context, term string, limit int) ([]models.Community, error) {
	term, err := validation.SearchTerm(term)
	if err != nil {
		return nil, err
	}
	return s.communityRepo.SearchByName(ctx, term, normalizeLimit(limit))
}

func (s *CommunityService) UpdateCommunity(ctx context.Context, in UpdateCommunityInput) (*models.Community, error) {
	community, err := s.communityRepo.GetByID(ctx, in.CommunityID)
	if err != nil {
		return nil, err
	}

	if err := s.requireRole(ctx, in.CommunityID, in.ActorID, models.RoleAdmin); err != nil {
		return nil, err
	}

	if in.Name != "" {
		name := strings.TrimSpace(in.Name)
		if err := validation.CommunityName(name); err != nil {
			return nil, err
		}
		community.Name = name
	}
	if in.Description != nil {
		community.Description = *in.Description
	}
	if in.IsPrivate != nil {
		if *in.IsPrivate {
			community.PrivacyID = models.PrivacyPrivate
		} else {
			community.PrivacyID = models.PrivacyPublic
		}
	}

	if err := s.communityRepo.Update(ctx, community); err != nil {
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) DeleteCommunity(ctx context.Context, communityID, actorID uint) error {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return err
	}
	if err := s.requireRole(ctx, communityID, actorID, models.RoleAdmin); err != nil {
		return err
	}
	return s.communityRepo.Delete(ctx, communityID)
}

func (s *CommunityService) Join(ctx context.Context, communityID, userID uint) error {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return err
	}
	return s.communityRepo.AddMember(ctx, &models.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		RoleID:      models.RoleMember,
	})
}

// Leave removes the member's own membership. The last admin cannot leave;
// they must promote a replacement first.
func (s *CommunityService) Leave(ctx context.Context, communityID, userID uint) error {
	member, err := s.communityRepo.GetMember(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return models.NewNotFoundError("Membership", userID)
	}
	if member.RoleID == models.RoleAdmin {
		if err := s.requireAnotherAdmin(ctx, communityID); err != nil {
			return err
		}
	}
	return s.communityRepo.RemoveMember(ctx, communityID, userID)
}

// RemoveMember ejects another member. Admins can remove anyone but the last
// admin; moderators can remove plain members only.
func (s *CommunityService) RemoveMember(ctx context.Context, communityID, actorID, targetID uint) error {
	if actorID == targetID {
		return s.Leave(ctx, communityID, targetID)
	}

	actor, err := s.communityRepo.GetMember(ctx, communityID, actorID)
	if err != nil {
		return err
	}
	if actor == nil || actor.RoleID == models.RoleMember {
		return models.NewPermissionError("Only admins and moderators can remove members")
	}

	target, err := s.communityRepo.GetMember(ctx, communityID, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundError("Membership", targetID)
	}

	if actor.RoleID == models.RoleModerator && target.RoleID != models.RoleMember {
		return models.NewPermissionError("Moderators can only remove regular members")
	}
	if target.RoleID == models.RoleAdmin {
		if err := s.requireAnotherAdmin(ctx, communityID); err != nil {
			return err
		}
	}
	return s.communityRepo.RemoveMember(ctx, communityID, targetID)
}

// ChangeRole sets a member's role. Only admins may change roles, and the
// last admin cannot demote themselves.
func (s *CommunityService) ChangeRole(ctx context.Context, communityID, actorID, targetID, roleID uint) error {
	if roleID != models.RoleAdmin && roleID != models.RoleModerator && roleID != models.RoleMember {
		return models.NewValidationError("Unknown role")
	}

	if err := s.requireRole(ctx, communityID, actorID, models.RoleAdmin); err != nil {
		return err
	}

	target, err := s.communityRepo.GetMember(ctx, communityID, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundError("Membership", targetID)
	}
	if target.RoleID == roleID {
		return nil
	}

	if target.RoleID == models.RoleAdmin {
		if err := s.requireAnotherAdmin(ctx, communityID); err != nil {
			return err
		}
	}
	return s.communityRepo.UpdateMemberRole(ctx, communityID, targetID, roleID)
}

func (s *CommunityService) ListMembers(ctx context.Context, communityID uint, limit, offset int) ([]models.CommunityMember, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}
	return s.communityRepo.ListMembers(ctx, communityID, normalizeLimit(limit), offset)
}

func (s *CommunityService) ListUserCommunities(ctx context.Context, userID uint) ([]models.Community, error) {
	return s.communityRepo.ListUserCommunities(ctx, userID)
}

func (s *CommunityService) GetStatistics(ctx context.Context, communityID uint) (*models.CommunityStatistics, error) {
	return s.communityRepo.Statistics(ctx, communityID)
}

func (s *CommunityService) ListStatistics(ctx context.Context, limit, offset int) ([]models.CommunityStatistics, error) {
	return s.communityRepo.ListStatistics(ctx, normalizeLimit(limit), offset)
}

func (s *CommunityService) requireRole(ctx context.Context, communityID, userID, roleID uint) error {
	member, err := s.communityRepo.GetMember(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.RoleID != roleID {
		return models.NewPermissionError("Admin role required")
	}
	return nil
}

func (s *CommunityService) requireAnotherAdmin(ctx context.Context, communityID uint) error {
	admins, err := s.communityRepo.CountAdmins(ctx, communityID)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return models.NewValidationError("Community must keep at least one admin")
	}
	return nil
}

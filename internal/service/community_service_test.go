package service

import (
	"context"
	"strings"
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(communityID, userID, roleID uint) *models.CommunityMember {
	return &models.CommunityMember{CommunityID: communityID, UserID: userID, RoleID: roleID}
}

func TestCommunityService_CreateCommunity_Validation(t *testing.T) {
	t.Parallel()
	svc := NewCommunityService(noopCommunityRepo(), noopUserRepo())

	_, err := svc.CreateCommunity(context.Background(), CreateCommunityInput{CreatorID: 1, Name: "ab"})
	assertValidationError(t, err)

	_, err = svc.CreateCommunity(context.Background(), CreateCommunityInput{
		CreatorID: 1,
		Name:      strings.Repeat("x", 101),
	})
	assertValidationError(t, err)
}

func TestCommunityService_CreateCommunity_TrimsName(t *testing.T) {
	t.Parallel()
	repo := noopCommunityRepo()
	var gotName string
	repo.createWithAdminFn = func(_ context.Context, _ uint, name, _ string, _ bool) (*models.CommunityCreationResult, error) {
		gotName = name
		return &models.CommunityCreationResult{CommunityID: 1, CommunityName: name, Status: "success"}, nil
	}
	svc := NewCommunityService(repo, noopUserRepo())

	result, err := svc.CreateCommunity(context.Background(), CreateCommunityInput{CreatorID: 1, Name: "  gophers  "})
	require.NoError(t, err)
	assert.Equal(t, "gophers", gotName)
	assert.Equal(t, "success", result.Status)
}

func TestCommunityService_Leave_LastAdminCannotLeave(t *testing.T) {
	t.Parallel()
	repo := noopCommunityRepo()
	repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
		return member(communityID, userID, models.RoleAdmin), nil
	}
	repo.countAdminsFn = func(context.Context, uint) (int64, error) { return 1, nil }

	svc := NewCommunityService(repo, noopUserRepo())
	err := svc.Leave(context.Background(), 1, 10)
	assertValidationError(t, err)
}

func TestCommunityService_Leave_AdminWithReplacementCanLeave(t *testing.T) {
	t.Parallel()
	repo := noopCommunityRepo()
	repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
		return member(communityID, userID, models.RoleAdmin), nil
	}
	repo.countAdminsFn = func(context.Context, uint) (int64, error) { return 2, nil }
	removed := false
	repo.removeMemberFn = func(context.Context, uint, uint) error {
		removed = true
		return nil
	}

	svc := NewCommunityService(repo, noopUserRepo())
	require.NoError(t, svc.Leave(context.Background(), 1, 10))
	assert.True(t, removed)
}

func TestCommunityService_Leave_NonMemberIsNotFound(t *testing.T) {
	t.Parallel()
	svc := NewCommunityService(noopCommunityRepo(), noopUserRepo())
	err := svc.Leave(context.Background(), 1, 10)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestCommunityService_RemoveMember_Permissions(t *testing.T) {
	t.Parallel()

	t.Run("plain member cannot remove", func(t *testing.T) {
		t.Parallel()
		repo := noopCommunityRepo()
		repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
			return member(communityID, userID, models.RoleMember), nil
		}
		svc := NewCommunityService(repo, noopUserRepo())
		err := svc.RemoveMember(context.Background(), 1, 10, 20)
		assertPermissionError(t, err)
	})

	t.Run("moderator cannot remove a moderator", func(t *testing.T) {
		t.Parallel()
		repo := noopCommunityRepo()
		repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
			return member(communityID, userID, models.RoleModerator), nil
		}
		svc := NewCommunityService(repo, noopUserRepo())
		err := svc.RemoveMember(context.Background(), 1, 10, 20)
		assertPermissionError(t, err)
	})

	t.Run("moderator can remove a plain member", func(t *testing.T) {
		t.Parallel()
		repo := noopCommunityRepo()
		repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
			if userID == 10 {
				return member(communityID, userID, models.RoleModerator), nil
			}
			return member(communityID, userID, models.RoleMember), nil
		}
		removed := false
		repo.removeMemberFn = func(context.Context, uint, uint) error {
			removed = true
			return nil
		}
		svc := NewCommunityService(repo, noopUserRepo())
		require.NoError(t, svc.RemoveMember(context.Background(), 1, 10, 20))
		assert.True(t, removed)
	})

	t.Run("admin cannot remove the last admin", func(t *testing.T) {
		t.Parallel()
		repo := noopCommunityRepo()
		repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
			return member(communityID, userID, models.RoleAdmin), nil
		}
		repo.countAdminsFn = func(context.Context, uint) (int64, error) { return 1, nil }
		svc := NewCommunityService(repo, noopUserRepo())
		err := svc.RemoveMember(context.Background(), 1, 10, 20)
		assertValidationError(t, err)
	})
}

func TestCommunityService_ChangeRole(t *testing.T) {
	t.Parallel()

	t.Run("unknown role rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewCommunityService(noopCommunityRepo(), noopUserRepo())
		err := svc.ChangeRole(context.Background(), 1, 10, 20, 99)
		assertValidationError(t, err)
	})

	t.Run("non-admin cannot change roles", func(t *testing.T) {
		t.Parallel()
		repo := noopCommunityRepo()
		repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
			return member(communityID, userID, models.RoleModerator), nil
		}
		svc := NewCommunityService(repo, noopUserRepo())
		err := svc.ChangeRole(context.Background(), 1, 10, 20, models.RoleModerator)
		assertPermissionError(t, err)
	})

	t.Run("last admin cannot be demoted", func(t *testing.T) {
		t.Parallel()
		repo := noopCommunityRepo()
		repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
			return member(communityID, userID, models.RoleAdmin), nil
		}
		repo.countAdminsFn = func(context.Context, uint) (int64, error) { return 1, nil }
		svc := NewCommunityService(repo, noopUserRepo())
		err := svc.ChangeRole(context.Background(), 1, 10, 10, models.RoleMember)
		assertValidationError(t, err)
	})

	t.Run("admin promotes a member", func(t *testing.T) {
		t.Parallel()
		repo := noopCommunityRepo()
		repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
			if userID == 10 {
				return member(communityID, userID, models.RoleAdmin), nil
			}
			return member(communityID, userID, models.RoleMember), nil
		}
		var newRole uint
		repo.updateMemberRoleFn = func(_ context.Context, _, _, roleID uint) error {
			newRole = roleID
			return nil
		}
		svc := NewCommunityService(repo, noopUserRepo())
		require.NoError(t, svc.ChangeRole(context.Background(), 1, 10, 20, models.RoleModerator))
		assert.Equal(t, models.RoleModerator, newRole)
	})
}

func TestCommunityService_UpdateCommunity_RequiresAdmin(t *testing.T) {
	t.Parallel()
	repo := noopCommunityRepo()
	repo.getMemberFn = func(_ context.Context, communityID, userID uint) (*models.CommunityMember, error) {
		return member(communityID, userID, models.RoleMember), nil
	}
	svc := NewCommunityService(repo, noopUserRepo())
	_, err := svc.UpdateCommunity(context.Background(), UpdateCommunityInput{CommunityID: 1, ActorID: 10, Name: "renamed"})
	assertPermissionError(t, err)
}

package service

import (
	"context"
	"errors"
	"testing"

	"agora/internal/models"
)

// Hand-written stubs with overridable function fields. Each noop constructor
// returns a stub whose methods succeed with zero values; tests override only
// the calls they care about.

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertPermissionError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodePermission)
}

type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	updateFn          func(context.Context, *models.User) error
	deleteFn          func(context.Context, uint) error
	listFn            func(context.Context, int, int) ([]models.User, error)
	searchFn          func(context.Context, string, int) ([]models.UserSearchResult, error)
	searchTurkishFn   func(context.Context, string) ([]models.UserSearchResult, error)
	recommendationsFn func(context.Context, uint, int) ([]models.Recommendation, error)
	activityRankingFn func(context.Context) ([]models.ActivityRank, error)
	activeUsersFn     func(context.Context, int) ([]models.ActiveUser, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, term string, limit int) ([]models.UserSearchResult, error) {
	return s.searchFn(ctx, term, limit)
}
func (s *userRepoStub) SearchTurkish(ctx context.Context, term string) ([]models.UserSearchResult, error) {
	return s.searchTurkishFn(ctx, term)
}
func (s *userRepoStub) Recommendations(ctx context.Context, userID uint, limit int) ([]models.Recommendation, error) {
	return s.recommendationsFn(ctx, userID, limit)
}
func (s *userRepoStub) ActivityRanking(ctx context.Context) ([]models.ActivityRank, error) {
	return s.activityRankingFn(ctx)
}
func (s *userRepoStub) ActiveUsers(ctx context.Context, limit int) ([]models.ActiveUser, error) {
	return s.activeUsersFn(ctx, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn: func(context.Context, string, int) ([]models.UserSearchResult, error) {
			return nil, nil
		},
		searchTurkishFn: func(context.Context, string) ([]models.UserSearchResult, error) {
			return nil, nil
		},
		recommendationsFn: func(context.Context, uint, int) ([]models.Recommendation, error) {
			return nil, nil
		},
		activityRankingFn: func(context.Context) ([]models.ActivityRank, error) { return nil, nil },
		activeUsersFn:     func(context.Context, int) ([]models.ActiveUser, error) { return nil, nil },
	}
}

type followRepoStub struct {
	createFn             func(context.Context, *models.Follow) error
	getFn                func(context.Context, uint, uint) (*models.Follow, error)
	updateStatusFn       func(context.Context, uint, uint, uint) error
	deleteFn             func(context.Context, uint, uint) error
	listFollowersFn      func(context.Context, uint, int, int) ([]models.User, error)
	listFollowingFn      func(context.Context, uint, int, int) ([]models.User, error)
	listPendingFn        func(context.Context, uint) ([]models.User, error)
	statsFn              func(context.Context, uint) (*models.FollowStats, error)
	isAcceptedFollowerFn func(context.Context, uint, uint) (bool, error)
}

func (s *followRepoStub) Create(ctx context.Context, f *models.Follow) error {
	return s.createFn(ctx, f)
}
func (s *followRepoStub) Get(ctx context.Context, followerID, followingID uint) (*models.Follow, error) {
	return s.getFn(ctx, followerID, followingID)
}
func (s *followRepoStub) UpdateStatus(ctx context.Context, followerID, followingID, statusID uint) error {
	return s.updateStatusFn(ctx, followerID, followingID, statusID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID uint) error {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.listFollowersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.listFollowingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) ListPending(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listPendingFn(ctx, userID)
}
func (s *followRepoStub) Stats(ctx context.Context, userID uint) (*models.FollowStats, error) {
	return s.statsFn(ctx, userID)
}
func (s *followRepoStub) IsAcceptedFollower(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isAcceptedFollowerFn(ctx, followerID, followingID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:       func(context.Context, *models.Follow) error { return nil },
		getFn:          func(context.Context, uint, uint) (*models.Follow, error) { return nil, nil },
		updateStatusFn: func(context.Context, uint, uint, uint) error { return nil },
		deleteFn:       func(context.Context, uint, uint) error { return nil },
		listFollowersFn: func(context.Context, uint, int, int) ([]models.User, error) {
			return nil, nil
		},
		listFollowingFn: func(context.Context, uint, int, int) ([]models.User, error) {
			return nil, nil
		},
		listPendingFn:        func(context.Context, uint) ([]models.User, error) { return nil, nil },
		statsFn:              func(context.Context, uint) (*models.FollowStats, error) { return &models.FollowStats{}, nil },
		isAcceptedFollowerFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	updateFn          func(context.Context, *models.Post) error
	deleteFn          func(context.Context, uint) error
	listByUserFn      func(context.Context, uint, int, int) ([]models.Post, error)
	listByCommunityFn func(context.Context, uint, int, int) ([]models.Post, error)
	feedFn            func(context.Context, uint, int, int) ([]models.FeedEntry, error)
	likeFn            func(context.Context, uint, uint) error
	unlikeFn          func(context.Context, uint, uint) error
	likeCountFn       func(context.Context, uint) (int64, error)
	hasLikedFn        func(context.Context, uint, uint) (bool, error)
	listLikersFn      func(context.Context, uint) ([]models.User, error)
	popularFn         func(context.Context, int) ([]models.PopularPost, error)
	searchSimpleFn    func(context.Context, uint, string, int) ([]models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error { return s.updateFn(ctx, p) }
func (s *postRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.Post, error) {
	return s.listByCommunityFn(ctx, communityID, limit, offset)
}
func (s *postRepoStub) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.FeedEntry, error) {
	return s.feedFn(ctx, viewerID, limit, offset)
}
func (s *postRepoStub) Like(ctx context.Context, postID, userID uint) error {
	return s.likeFn(ctx, postID, userID)
}
func (s *postRepoStub) Unlike(ctx context.Context, postID, userID uint) error {
	return s.unlikeFn(ctx, postID, userID)
}
func (s *postRepoStub) LikeCount(ctx context.Context, postID uint) (int64, error) {
	return s.likeCountFn(ctx, postID)
}
func (s *postRepoStub) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	return s.hasLikedFn(ctx, postID, userID)
}
func (s *postRepoStub) ListLikers(ctx context.Context, postID uint) ([]models.User, error) {
	return s.listLikersFn(ctx, postID)
}
func (s *postRepoStub) Popular(ctx context.Context, limit int) ([]models.PopularPost, error) {
	return s.popularFn(ctx, limit)
}
func (s *postRepoStub) SearchSimple(ctx context.Context, viewerID uint, term string, limit int) ([]models.Post, error) {
	return s.searchSimpleFn(ctx, viewerID, term, limit)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		updateFn:  func(context.Context, *models.Post) error { return nil },
		deleteFn:  func(context.Context, uint) error { return nil },
		listByUserFn: func(context.Context, uint, int, int) ([]models.Post, error) {
			return nil, nil
		},
		listByCommunityFn: func(context.Context, uint, int, int) ([]models.Post, error) {
			return nil, nil
		},
		feedFn:         func(context.Context, uint, int, int) ([]models.FeedEntry, error) { return nil, nil },
		likeFn:         func(context.Context, uint, uint) error { return nil },
		unlikeFn:       func(context.Context, uint, uint) error { return nil },
		likeCountFn:    func(context.Context, uint) (int64, error) { return 0, nil },
		hasLikedFn:     func(context.Context, uint, uint) (bool, error) { return false, nil },
		listLikersFn:   func(context.Context, uint) ([]models.User, error) { return nil, nil },
		popularFn:      func(context.Context, int) ([]models.PopularPost, error) { return nil, nil },
		searchSimpleFn: func(context.Context, uint, string, int) ([]models.Post, error) { return nil, nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
	listByPostFn  func(context.Context, uint, int, int) ([]models.Comment, error)
	listByUserFn  func(context.Context, uint, int, int) ([]models.Comment, error)
	listRepliesFn func(context.Context, uint) ([]models.Comment, error)
	threadFn      func(context.Context, uint) ([]models.CommentThreadEntry, error)
	countByPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Comment, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint) ([]models.Comment, error) {
	return s.listRepliesFn(ctx, parentID)
}
func (s *commentRepoStub) Thread(ctx context.Context, postID uint) ([]models.CommentThreadEntry, error) {
	return s.threadFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		updateFn: func(context.Context, *models.Comment) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
		listByPostFn: func(context.Context, uint, int, int) ([]models.Comment, error) {
			return nil, nil
		},
		listByUserFn: func(context.Context, uint, int, int) ([]models.Comment, error) {
			return nil, nil
		},
		listRepliesFn: func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
		threadFn:      func(context.Context, uint) ([]models.CommentThreadEntry, error) { return nil, nil },
		countByPostFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type communityRepoStub struct {
	createWithAdminFn     func(context.Context, uint, string, string, bool) (*models.CommunityCreationResult, error)
	getByIDFn             func(context.Context, uint) (*models.Community, error)
	getByNameFn           func(context.Context, string) (*models.Community, error)
	updateFn              func(context.Context, *models.Community) error
	deleteFn              func(context.Context, uint) error
	listFn                func(context.Context, int, int) ([]models.Community, error)
	searchByNameFn        func(context.Context, string, int) ([]models.Community, error)
	addMemberFn           func(context.Context, *models.CommunityMember) error
	removeMemberFn        func(context.Context, uint, uint) error
	updateMemberRoleFn    func(context.Context, uint, uint, uint) error
	getMemberFn           func(context.Context, uint, uint) (*models.CommunityMember, error)
	listMembersFn         func(context.Context, uint, int, int) ([]models.CommunityMember, error)
	listUserCommunitiesFn func(context.Context, uint) ([]models.Community, error)
	countAdminsFn         func(context.Context, uint) (int64, error)
	statisticsFn          func(context.Context, uint) (*models.CommunityStatistics, error)
	listStatisticsFn      func(context.Context, int, int) ([]models.CommunityStatistics, error)
}

func (s *communityRepoStub) CreateWithAdmin(ctx context.Context, creatorID uint, name, description string, isPrivate bool) (*models.CommunityCreationResult, error) {
	return s.createWithAdminFn(ctx, creatorID, name, description, isPrivate)
}
func (s *communityRepoStub) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	return s.getByIDFn(ctx, id)
}
func (s *communityRepoStub) GetByName(ctx context.Context, name string) (*models.Community, error) {
	return s.getByNameFn(ctx, name)
}
func (s *communityRepoStub) Update(ctx context.Context, c *models.Community) error {
	return s.updateFn(ctx, c)
}
func (s *communityRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *communityRepoStub) List(ctx context.Context, limit, offset int) ([]models.Community, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *communityRepoStub) SearchByName(ctx context.Context, term string, limit int) ([]models.Community, error) {
	return s.searchByNameFn(ctx, term, limit)
}
func (s *communityRepoStub) AddMember(ctx context.Context, m *models.CommunityMember) error {
	return s.addMemberFn(ctx, m)
}
func (s *communityRepoStub) RemoveMember(ctx context.Context, communityID, userID uint) error {
	return s.removeMemberFn(ctx, communityID, userID)
}
func (s *communityRepoStub) UpdateMemberRole(ctx context.Context, communityID, userID, roleID uint) error {
	return s.updateMemberRoleFn(ctx, communityID, userID, roleID)
}
func (s *communityRepoStub) GetMember(ctx context.Context, communityID, userID uint) (*models.CommunityMember, error) {
	return s.getMemberFn(ctx, communityID, userID)
}
func (s *communityRepoStub) ListMembers(ctx context.Context, communityID uint, limit, offset int) ([]models.CommunityMember, error) {
	return s.listMembersFn(ctx, communityID, limit, offset)
}
func (s *communityRepoStub) ListUserCommunities(ctx context.Context, userID uint) ([]models.Community, error) {
	return s.listUserCommunitiesFn(ctx, userID)
}
func (s *communityRepoStub) CountAdmins(ctx context.Context, communityID uint) (int64, error) {
	return s.countAdminsFn(ctx, communityID)
}
func (s *communityRepoStub) Statistics(ctx context.Context, communityID uint) (*models.CommunityStatistics, error) {
	return s.statisticsFn(ctx, communityID)
}
func (s *communityRepoStub) ListStatistics(ctx context.Context, limit, offset int) ([]models.CommunityStatistics, error) {
	return s.listStatisticsFn(ctx, limit, offset)
}

func noopCommunityRepo() *communityRepoStub {
	return &communityRepoStub{
		createWithAdminFn: func(_ context.Context, creatorID uint, name, _ string, _ bool) (*models.CommunityCreationResult, error) {
			return &models.CommunityCreationResult{CommunityID: 1, CommunityName: name, Status: "success"}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Community, error) {
			return &models.Community{ID: id}, nil
		},
		getByNameFn: func(context.Context, string) (*models.Community, error) { return nil, nil },
		updateFn:    func(context.Context, *models.Community) error { return nil },
		deleteFn:    func(context.Context, uint) error { return nil },
		listFn:      func(context.Context, int, int) ([]models.Community, error) { return nil, nil },
		searchByNameFn: func(context.Context, string, int) ([]models.Community, error) {
			return nil, nil
		},
		addMemberFn:        func(context.Context, *models.CommunityMember) error { return nil },
		removeMemberFn:     func(context.Context, uint, uint) error { return nil },
		updateMemberRoleFn: func(context.Context, uint, uint, uint) error { return nil },
		getMemberFn:        func(context.Context, uint, uint) (*models.CommunityMember, error) { return nil, nil },
		listMembersFn: func(context.Context, uint, int, int) ([]models.CommunityMember, error) {
			return nil, nil
		},
		listUserCommunitiesFn: func(context.Context, uint) ([]models.Community, error) { return nil, nil },
		countAdminsFn:         func(context.Context, uint) (int64, error) { return 1, nil },
		statisticsFn: func(context.Context, uint) (*models.CommunityStatistics, error) {
			return &models.CommunityStatistics{}, nil
		},
		listStatisticsFn: func(context.Context, int, int) ([]models.CommunityStatistics, error) {
			return nil, nil
		},
	}
}

type messageRepoStub struct {
	createFn               func(context.Context, *models.Message) error
	getByIDFn              func(context.Context, uint) (*models.Message, error)
	conversationFn         func(context.Context, uint, uint, int, int) ([]models.Message, error)
	conversationsFn        func(context.Context, uint) ([]models.ConversationSummary, error)
	markReadFn             func(context.Context, uint) error
	markConversationReadFn func(context.Context, uint, uint) (int64, error)
	deleteFn               func(context.Context, uint) error
	unreadCountFn          func(context.Context, uint) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, m *models.Message) error {
	return s.createFn(ctx, m)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) Conversation(ctx context.Context, userA, userB uint, limit, offset int) ([]models.Message, error) {
	return s.conversationFn(ctx, userA, userB, limit, offset)
}
func (s *messageRepoStub) Conversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	return s.conversationsFn(ctx, userID)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, messageID uint) error {
	return s.markReadFn(ctx, messageID)
}
func (s *messageRepoStub) MarkConversationRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	return s.markConversationReadFn(ctx, receiverID, senderID)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *messageRepoStub) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.unreadCountFn(ctx, userID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn: func(context.Context, *models.Message) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Message, error) {
			return &models.Message{ID: id}, nil
		},
		conversationFn: func(context.Context, uint, uint, int, int) ([]models.Message, error) {
			return nil, nil
		},
		conversationsFn: func(context.Context, uint) ([]models.ConversationSummary, error) {
			return nil, nil
		},
		markReadFn:             func(context.Context, uint) error { return nil },
		markConversationReadFn: func(context.Context, uint, uint) (int64, error) { return 0, nil },
		deleteFn:               func(context.Context, uint) error { return nil },
		unreadCountFn:          func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

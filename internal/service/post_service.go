package service

import (
	"context"
	"strings"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/validation"
)

type PostService struct {
	postRepo      repository.PostRepository
	userRepo      repository.UserRepository
	followRepo    repository.FollowRepository
	communityRepo repository.CommunityRepository
}

type CreatePostInput struct {
	UserID      uint
	CommunityID *uint
	Content     *string
	MediaURL    *string
}

type UpdatePostInput struct {
	PostID   uint
	UserID   uint
	Content  *string
	MediaURL *string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	communityRepo repository.CommunityRepository,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		userRepo:      userRepo,
		followRepo:    followRepo,
		communityRepo: communityRepo,
	}
}

const maxPostContentLen = 5000

func validatePostBody(content, mediaURL *string) error {
	hasContent := content != nil && strings.TrimSpace(*content) != ""
	hasMedia := mediaURL != nil && *mediaURL != ""
	if !hasContent && !hasMedia {
		return models.NewValidationError("Post needs content or media")
	}
	if content != nil && len(*content) > maxPostContentLen {
		return models.NewValidationError("Post content too long (max 5000 characters)")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostBody(in.Content, in.MediaURL); err != nil {
		return nil, err
	}

	if in.CommunityID != nil {
		member, err := s.communityRepo.GetMember(ctx, *in.CommunityID, in.UserID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, models.NewPermissionError("You must be a member to post in this community")
		}
	}

	post := &models.Post{
		UserID:      in.UserID,
		CommunityID: in.CommunityID,
		Content:     in.Content,
		MediaURL:    in.MediaURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost applies the privacy contract: a private author's posts are visible
// only to the author and their accepted followers.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuthorVisibility(ctx, viewerID, post.UserID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) checkAuthorVisibility(ctx context.Context, viewerID, authorID uint) error {
	if viewerID == authorID {
		return nil
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return err
	}
	if !author.IsPrivate {
		return nil
	}
	accepted, err := s.followRepo.IsAcceptedFollower(ctx, viewerID, authorID)
	if err != nil {
		return err
	}
	if !accepted {
		return models.NewPermissionError("This account is private")
	}
	return nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewPermissionError("You can only edit your own posts")
	}

	if in.Content != nil {
		post.Content = in.Content
	}
	if in.MediaURL != nil {
		post.MediaURL = in.MediaURL
	}
	if err := validatePostBody(post.Content, post.MediaURL); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewPermissionError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) ListUserPosts(ctx context.Context, viewerID, authorID uint, limit, offset int) ([]models.Post, error) {
	if err := s.checkAuthorVisibility(ctx, viewerID, authorID); err != nil {
		return nil, err
	}
	return s.postRepo.ListByUser(ctx, authorID, normalizeLimit(limit), offset)
}

func (s *PostService) ListCommunityPosts(ctx context.Context, communityID uint, limit, offset int) ([]models.Post, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}
	return s.postRepo.ListByCommunity(ctx, communityID, normalizeLimit(limit), offset)
}

// GetFeed returns posts from accounts the viewer accept-follows, newest
// first. Private authors are already filtered by the accepted-status join.
func (s *PostService) GetFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.FeedEntry, error) {
	return s.postRepo.Feed(ctx, viewerID, normalizeLimit(limit), offset)
}

func (s *PostService) LikePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID == userID {
		return models.NewValidationError("You cannot like your own post")
	}
	if err := s.checkAuthorVisibility(ctx, userID, post.UserID); err != nil {
		return err
	}
	return s.postRepo.Like(ctx, postID, userID)
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) error {
	return s.postRepo.Unlike(ctx, postID, userID)
}

func (s *PostService) ListLikers(ctx context.Context, postID uint) ([]models.User, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.postRepo.ListLikers(ctx, postID)
}

func (s *PostService) GetPopularPosts(ctx context.Context, limit int) ([]models.PopularPost, error) {
	return s.postRepo.Popular(ctx, normalizeLimit(limit))
}

func (s *PostService) SearchPosts(ctx context.Context, viewerID uint, term string, limit int) ([]models.Post, error) {
	term, err := validation.SearchTerm(term)
	if err != nil {
		return nil, err
	}
	return s.postRepo.SearchSimple(ctx, viewerID, term, normalizeLimit(limit))
}

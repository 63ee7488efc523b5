package repository

import (
	"context"
	"errors"

	"agora/internal/cache"
	"agora/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.Post, error)
	Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.FeedEntry, error)
	Like(ctx context.Context, postID, userID uint) error
	Unlike(ctx context.Context, postID, userID uint) error
	LikeCount(ctx context.Context, postID uint) (int64, error)
	HasLiked(ctx context.Context, postID, userID uint) (bool, error)
	ListLikers(ctx context.Context, postID uint) ([]models.User, error)
	Popular(ctx context.Context, limit int) ([]models.PopularPost, error)
	SearchSimple(ctx context.Context, viewerID uint, term string, limit int) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return translateWriteError(err, "Post already exists")
	}
	cache.InvalidateFeed(ctx, post.UserID)
	cache.InvalidatePopular(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	result := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("post_id = ?", post.ID).
		Updates(map[string]interface{}{
			"content":   post.Content,
			"media_url": post.MediaURL,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "Post already exists")
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}

// Delete removes the post row. Likes and comments go with it via the
// cleanup trigger, so callers never see orphans.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePopular(ctx)
	return nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.FeedEntry, error) {
	var entries []models.FeedEntry
	key := cache.FeedKey(viewerID)

	// Only the first page is worth caching; deeper pages are rare and the
	// feed invalidates on every followed-author post anyway.
	if offset == 0 {
		err := cache.Aside(ctx, key, &entries, cache.FeedTTL, func() error {
			return r.feedQuery(ctx, viewerID, limit, offset, &entries)
		})
		if err != nil {
			return nil, err
		}
		return entries, nil
	}
	if err := r.feedQuery(ctx, viewerID, limit, offset, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postRepository) feedQuery(ctx context.Context, viewerID uint, limit, offset int, dest *[]models.FeedEntry) error {
	if err := r.db.WithContext(ctx).
		Raw(`SELECT post_id, author_id, author_username, community_id, content, media_url, created_at
		     FROM user_feed_view
		     WHERE viewing_user_id = ?
		     LIMIT ? OFFSET ?`, viewerID, limit, offset).
		Scan(dest).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Like(ctx context.Context, postID, userID uint) error {
	like := models.PostLike{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return translateWriteError(err, "Post already liked")
	}
	cache.InvalidatePopular(ctx)
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, postID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like", postID)
	}
	cache.InvalidatePopular(ctx)
	return nil
}

func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) ListLikers(ctx context.Context, postID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN post_likes pl ON pl.user_id = users.user_id").
		Where("pl.post_id = ?", postID).
		Order("pl.created_at DESC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *postRepository) Popular(ctx context.Context, limit int) ([]models.PopularPost, error) {
	var posts []models.PopularPost
	err := cache.Aside(ctx, cache.PopularPostsKey, &posts, cache.PopularTTL, func() error {
		if err := r.db.WithContext(ctx).
			Raw("SELECT * FROM popular_posts_view LIMIT ?", limit).
			Scan(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) SearchSimple(ctx context.Context, viewerID uint, term string, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM search_posts_simple(?, ?) LIMIT ?", term, viewerID, limit).
		Scan(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

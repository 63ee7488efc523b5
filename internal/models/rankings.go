package models

import "time"

// Row types for the derived read-only views. The views are always consistent
// with the base tables; these structs only shape scan targets.

// FeedEntry is one row of user_feed_view: a post from an accepted-followed
// author, with author identity attached.
type FeedEntry struct {
	PostID         uint      `json:"post_id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	CommunityID    *uint     `json:"community_id,omitempty"`
	Content        *string   `json:"content"`
	MediaURL       *string   `json:"media_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// PopularPost is one row of popular_posts_view, ordered by engagement score.
type PopularPost struct {
	PostID          uint      `json:"post_id"`
	UserID          uint      `json:"user_id"`
	Content         *string   `json:"content"`
	LikeCount       int       `json:"like_count"`
	CommentCount    int       `json:"comment_count"`
	EngagementScore int       `json:"engagement_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// ActiveUser is one row of active_users_view.
type ActiveUser struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	TotalActivity int    `json:"total_activity"`
}

// ActivityRank is one row of user_activity_ranking. PostRank is 1 for the
// most prolific poster; users with zero posts rank last, deterministically.
type ActivityRank struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	TotalPosts int    `json:"total_posts"`
	PostRank   int    `json:"post_rank"`
}

// Recommendation is a follow suggestion derived from mutual accepted follows.
type Recommendation struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	MutualCount int    `json:"mutual_count"`
}

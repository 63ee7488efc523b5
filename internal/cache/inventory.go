package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	FeedKeyPrefix    = "feed:%d"
	PopularPostsKey  = "posts:popular"
	ActiveUsersKey   = "users:active"
	ConversationsFmt = "conversations:%d"
)

const (
	UserTTL         = 5 * time.Minute
	FeedTTL         = 1 * time.Minute
	PopularTTL      = 5 * time.Minute
	ConversationTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func FeedKey(userID uint) string {
	return fmt.Sprintf(FeedKeyPrefix, userID)
}

func ConversationsKey(userID uint) string {
	return fmt.Sprintf(ConversationsFmt, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateFeed(ctx context.Context, userID uint) {
	Invalidate(ctx, FeedKey(userID))
}

func InvalidatePopular(ctx context.Context) {
	Invalidate(ctx, PopularPostsKey)
}

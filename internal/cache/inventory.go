package cache

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Key builders. One key per cached object, invalidated on write.
func UserKey(id uint) string   { return fmt.Sprintf("user:%d", id) }
func PostKey(id uint) string   { return fmt.Sprintf("post:%d", id) }
func FeedFirstPageKey() string { return "feed:page:0" }

const (
	UserTTL = 10 * time.Minute
	PostTTL = 5 * time.Minute
	FeedTTL = 30 * time.Second
)

// Invalidate removes the given keys, best-effort.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidate failed for %v: %v", keys, err)
	}
}

// InvalidateUser drops the cached user record.
func InvalidateUser(ctx context.Context, id uint) {
	Invalidate(ctx, UserKey(id))
}

// InvalidatePost drops the cached post and the hot first feed page,
// which embeds post state (likes, views).
func InvalidatePost(ctx context.Context, id uint) {
	Invalidate(ctx, PostKey(id), FeedFirstPageKey())
}

// InvalidateFeed drops the cached first feed page.
func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedFirstPageKey())
}

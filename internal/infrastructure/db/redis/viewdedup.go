package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewDedupTTL = 30 * time.Minute

// ViewDeduper suppresses repeat view counts from the same viewer within the
// TTL window, so refresh spam does not inflate counters.
// Key format: view:<viewer_key>:<video_id>
type ViewDeduper struct {
	client *redis.Client
}

// NewViewDeduper creates a ViewDeduper wrapping the given Redis client.
func NewViewDeduper(client *redis.Client) *ViewDeduper {
	return &ViewDeduper{client: client}
}

// IsDuplicate reports whether this viewer's view of the video was already
// counted inside the window.
func (d *ViewDeduper) IsDuplicate(ctx context.Context, viewerKey, videoID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(viewerKey, videoID)).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this view has been counted (expires after viewDedupTTL).
func (d *ViewDeduper) Mark(ctx context.Context, viewerKey, videoID string) error {
	return d.client.Set(ctx, d.key(viewerKey, videoID), "1", viewDedupTTL).Err()
}

func (d *ViewDeduper) key(viewerKey, videoID string) string {
	return fmt.Sprintf("view:%s:%s", viewerKey, videoID)
}

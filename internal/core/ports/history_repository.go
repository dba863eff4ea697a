package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// HistoryRepository defines persistence for watch-history rows.
type HistoryRepository interface {
	// Upsert inserts or updates the row keyed by (user, video). Safe to call
	// repeatedly with the same pair.
	Upsert(ctx context.Context, entry *domain.WatchHistory) error
	ListByUser(ctx context.Context, userID string) ([]*domain.WatchHistory, error)
	DeleteByUser(ctx context.Context, userID string) error
	DeleteByVideo(ctx context.Context, videoID string) error
}

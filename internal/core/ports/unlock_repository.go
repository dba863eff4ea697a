package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// UnlockRepository defines persistence for grants and the coin exchange.
type UnlockRepository interface {
	// Purchase atomically debits coinCost from the viewer's balance and
	// inserts the grant. Both apply or neither does. Implementations must
	// translate a duplicate-grant conflict (a concurrent purchase raced past
	// the caller's pre-check) into domain.ErrAlreadyUnlocked, and a failed
	// conditional debit into *domain.InsufficientCoinsError.
	Purchase(ctx context.Context, viewerID, videoID string, coinCost int) (*domain.Unlock, error)

	// Exists reports whether a grant exists for the (viewer, video) pair.
	// Backed by the unique index; O(1), never a scan.
	Exists(ctx context.Context, viewerID, videoID string) (bool, error)

	ListByViewer(ctx context.Context, viewerID string) ([]*domain.Unlock, error)

	// DeleteByViewer and DeleteByVideo are the explicit cascade hooks used by
	// account and video deletion. Normal operation never removes grants.
	DeleteByViewer(ctx context.Context, viewerID string) error
	DeleteByVideo(ctx context.Context, videoID string) error
}

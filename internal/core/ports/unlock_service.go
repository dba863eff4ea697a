package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// Unlock outcome statuses reported to the caller. All three leave the viewer
// with access; only StatusUnlocked involved a debit.
const (
	StatusUnlocked        = "unlocked"
	StatusAlreadyUnlocked = "already_unlocked"
	StatusFree            = "free"
)

// UnlockResult is returned by RequestUnlock on every non-error outcome.
type UnlockResult struct {
	VideoID        string
	Status         string
	CoinsSpent     int
	RemainingCoins int
}

// UnlockService is the unlock engine and access resolver.
type UnlockService interface {
	// RequestUnlock performs the coin-for-access exchange. Checks run in a
	// fixed order: viewer role, video existence, free content, existing
	// grant, balance, then the atomic debit+insert. Concurrent duplicates
	// collapse to a single grant and a single debit; the loser observes the
	// already-unlocked outcome.
	RequestUnlock(ctx context.Context, principal Principal, videoID string) (*UnlockResult, error)

	// CanAccess reports whether the principal may watch the video. Pure:
	// safe on every render. Order: free content, owner, viewer with grant.
	CanAccess(ctx context.Context, principal *Principal, video *domain.Video) (bool, error)

	ListUnlocks(ctx context.Context, principal Principal) ([]*domain.Unlock, error)
}

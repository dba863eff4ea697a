package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

// UnlockService is the unlock engine and access resolver. It owns the only
// write path to viewer coin balances.
type UnlockService struct {
	users   ports.UserRepository
	videos  ports.VideoRepository
	unlocks ports.UnlockRepository
	logger  zerolog.Logger
}

func NewUnlockService(
	users ports.UserRepository,
	videos ports.VideoRepository,
	unlocks ports.UnlockRepository,
	logger zerolog.Logger,
) *UnlockService {
	return &UnlockService{users: users, videos: videos, unlocks: unlocks, logger: logger}
}

// RequestUnlock exchanges coins for a permanent grant. Check order is fixed:
// role, video existence, free content, existing grant, balance, then the
// atomic debit+insert. The pre-checks give clean errors; the unique grant
// index inside Purchase is the backstop when two requests race past them —
// the loser's conflict is reported as the already-unlocked outcome, since the
// state it wanted already holds.
func (s *UnlockService) RequestUnlock(ctx context.Context, principal ports.Principal, videoID string) (*ports.UnlockResult, error) {
	if principal.Role != domain.RoleViewer {
		return nil, fmt.Errorf("request unlock: %w", domain.ErrForbidden)
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("request unlock: %w", err)
	}

	viewer, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("request unlock: %w", err)
	}

	// Free content needs no grant at all.
	if video.Free() {
		return &ports.UnlockResult{
			VideoID:        video.ID,
			Status:         ports.StatusFree,
			RemainingCoins: viewer.Coins,
		}, nil
	}

	unlocked, err := s.unlocks.Exists(ctx, principal.UserID, video.ID)
	if err != nil {
		return nil, fmt.Errorf("request unlock: %w", err)
	}
	if unlocked {
		return &ports.UnlockResult{
			VideoID:        video.ID,
			Status:         ports.StatusAlreadyUnlocked,
			RemainingCoins: viewer.Coins,
		}, nil
	}

	if viewer.Coins < video.CoinCost {
		return nil, &domain.InsufficientCoinsError{
			Required:  video.CoinCost,
			Available: viewer.Coins,
		}
	}

	unlock, err := s.unlocks.Purchase(ctx, principal.UserID, video.ID, video.CoinCost)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyUnlocked) {
			// Lost a race with a concurrent request for the same pair. No
			// debit happened here; the winner already holds the grant.
			s.logger.Debug().
				Str("viewer_id", principal.UserID).
				Str("video_id", video.ID).
				Msg("concurrent unlock collapsed to existing grant")
			return &ports.UnlockResult{
				VideoID:        video.ID,
				Status:         ports.StatusAlreadyUnlocked,
				RemainingCoins: viewer.Coins,
			}, nil
		}
		return nil, fmt.Errorf("request unlock: %w", err)
	}

	s.logger.Info().
		Str("viewer_id", principal.UserID).
		Str("video_id", video.ID).
		Int("coins_spent", unlock.CoinsSpent).
		Msg("video unlocked")

	return &ports.UnlockResult{
		VideoID:        video.ID,
		Status:         ports.StatusUnlocked,
		CoinsSpent:     unlock.CoinsSpent,
		RemainingCoins: viewer.Coins - unlock.CoinsSpent,
	}, nil
}

// CanAccess is the single gate-check used by every read path. Pure: no
// mutation, safe on every render. Decision order: free content, owner,
// viewer holding a grant.
func (s *UnlockService) CanAccess(ctx context.Context, principal *ports.Principal, video *domain.Video) (bool, error) {
	if video.Free() {
		return true, nil
	}
	if principal == nil {
		return false, nil
	}
	if principal.UserID == video.CreatorID {
		return true, nil
	}
	if principal.Role != domain.RoleViewer {
		return false, nil
	}
	unlocked, err := s.unlocks.Exists(ctx, principal.UserID, video.ID)
	if err != nil {
		return false, fmt.Errorf("can access: %w", err)
	}
	return unlocked, nil
}

// ListUnlocks returns the viewer's grants, newest first as stored.
func (s *UnlockService) ListUnlocks(ctx context.Context, principal ports.Principal) ([]*domain.Unlock, error) {
	if principal.Role != domain.RoleViewer {
		return nil, fmt.Errorf("list unlocks: %w", domain.ErrForbidden)
	}
	unlocks, err := s.unlocks.ListByViewer(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	return unlocks, nil
}

package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// VideoRepository defines persistence for catalog entries.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (*domain.Video, error)
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	ListPublic(ctx context.Context) ([]*domain.Video, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Video, error)
	// UpdateCoinCost changes the price going forward. Existing grants keep
	// the coins_spent they were created with.
	UpdateCoinCost(ctx context.Context, videoID string, coinCost int) error
	// IncrementViews adds one to the monotonic view counter.
	IncrementViews(ctx context.Context, videoID string) error
	Delete(ctx context.Context, videoID string) error
}

package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// UploadVideoInput carries the metadata for a new catalog entry. Filename is
// an opaque reference into the media store; this service never touches bytes.
type UploadVideoInput struct {
	Title       string
	Description string
	Filename    string
	Thumbnail   string
	CoinCost    int
	Duration    int
}

// CatalogItem is a catalog entry decorated with the caller's access state.
type CatalogItem struct {
	Video    *domain.Video
	Unlocked bool // caller holds a grant
	Access   bool // caller may watch (free, owner, or unlocked)
}

// ChannelView is the public page for a creator channel.
type ChannelView struct {
	Creator *domain.User
	Videos  []CatalogItem
}

// CatalogService defines creator-side catalog management and read-side
// catalog queries.
type CatalogService interface {
	UploadVideo(ctx context.Context, principal Principal, input UploadVideoInput) (*domain.Video, error)
	// SetPrice updates coin_cost going forward. Owner-only; no retroactive
	// effect on existing grants.
	SetPrice(ctx context.Context, principal Principal, videoID string, coinCost int) (*domain.Video, error)
	GetVideo(ctx context.Context, principal *Principal, videoID string) (*CatalogItem, error)
	ListCatalog(ctx context.Context, principal *Principal) ([]CatalogItem, error)
	ListOwn(ctx context.Context, principal Principal) ([]*domain.Video, error)
	Channel(ctx context.Context, principal *Principal, name string) (*ChannelView, error)
	SetupChannel(ctx context.Context, principal Principal, update ChannelUpdate) (*domain.User, error)
	// DeleteVideo removes the entry and explicitly cascades its grants,
	// comments, and watch history.
	DeleteVideo(ctx context.Context, principal Principal, videoID string) error
}

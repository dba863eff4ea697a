package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// ChannelUpdate carries the mutable channel-profile fields for a creator.
type ChannelUpdate struct {
	ChannelName    string
	Category       string
	Bio            string
	ProfilePicture string
}

// UserRepository defines persistence for user accounts and coin balances.
// Coins are mutated only through UnlockRepository.Purchase; this interface
// exposes balances read-only.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByChannelName matches case-insensitively.
	FindByChannelName(ctx context.Context, name string) (*domain.User, error)
	UpdateChannel(ctx context.Context, userID string, update ChannelUpdate) error
	TouchLastLogin(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error
}

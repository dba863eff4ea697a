package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration, login, and account removal.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// DeleteAccount removes the principal's account and explicitly cascades
	// dependent rows: grants and watch history always, plus owned videos
	// (each with its own cascade) for creators.
	DeleteAccount(ctx context.Context, principal Principal) error
}

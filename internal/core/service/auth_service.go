package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

// AuthService implements registration, login, and account deletion.
type AuthService struct {
	users         ports.UserRepository
	videos        ports.VideoRepository
	unlocks       ports.UnlockRepository
	comments      ports.CommentRepository
	history       ports.HistoryRepository
	jwtSecret     string
	tokenTTL      time.Duration
	startingCoins int
	logger        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	videos ports.VideoRepository,
	unlocks ports.UnlockRepository,
	comments ports.CommentRepository,
	history ports.HistoryRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	startingCoins int,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if startingCoins < 0 {
		startingCoins = domain.DefaultStartingCoins
	}
	return &AuthService{
		users:         users,
		videos:        videos,
		unlocks:       unlocks,
		comments:      comments,
		history:       history,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		startingCoins: startingCoins,
		logger:        logger,
	}
}

// Register creates an account. Viewers start with the configured coin grant;
// creators carry no balance.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.IsValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if input.Role == domain.RoleViewer {
		user.Coins = s.startingCoins
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", created.Role).
		Msg("account registered")

	return created, nil
}

// Login verifies credentials and returns a signed HS256 token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	return token, user, nil
}

// DeleteAccount removes the caller and every dependent row. Cascades are
// explicit and enumerated here, never a storage-layer side effect: grants
// and history for any role, plus each owned video with its own cascade for
// creators.
func (s *AuthService) DeleteAccount(ctx context.Context, principal ports.Principal) error {
	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if user.Role == domain.RoleCreator {
		videos, err := s.videos.ListByCreator(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		for _, v := range videos {
			if err := s.unlocks.DeleteByVideo(ctx, v.ID); err != nil {
				return fmt.Errorf("delete account: cascade unlocks for video %s: %w", v.ID, err)
			}
			if err := s.comments.DeleteByVideo(ctx, v.ID); err != nil {
				return fmt.Errorf("delete account: cascade comments for video %s: %w", v.ID, err)
			}
			if err := s.history.DeleteByVideo(ctx, v.ID); err != nil {
				return fmt.Errorf("delete account: cascade history for video %s: %w", v.ID, err)
			}
			if err := s.videos.Delete(ctx, v.ID); err != nil {
				return fmt.Errorf("delete account: delete video %s: %w", v.ID, err)
			}
		}
	}

	if err := s.unlocks.DeleteByViewer(ctx, user.ID); err != nil {
		return fmt.Errorf("delete account: cascade unlocks: %w", err)
	}
	if err := s.history.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete account: cascade history: %w", err)
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", user.Role).
		Msg("account deleted with cascades")

	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

const testSecret = "test-secret"

func newAuthFixture() (*memStore, *AuthService) {
	store := newMemStore()
	svc := NewAuthService(
		&memUserRepo{store},
		&memVideoRepo{store},
		&memUnlockRepo{store},
		&memCommentRepo{store},
		&memHistoryRepo{store},
		testSecret,
		time.Hour,
		domain.DefaultStartingCoins,
		discardLogger,
	)
	return store, svc
}

func TestRegister_ViewerGetsStartingCoins(t *testing.T) {
	_, svc := newAuthFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     domain.RoleViewer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Coins != domain.DefaultStartingCoins {
		t.Errorf("expected %d starting coins, got %d", domain.DefaultStartingCoins, user.Coins)
	}
	if user.PasswordHash == "secret123" {
		t.Error("password must be hashed")
	}
}

func TestRegister_CreatorGetsNoCoins(t *testing.T) {
	_, svc := newAuthFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     domain.RoleCreator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Coins != 0 {
		t.Errorf("creators carry no balance, got %d", user.Coins)
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "eve",
		Email:    "eve@example.com",
		Password: "secret123",
		Role:     "admin",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture()

	input := ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     domain.RoleViewer,
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	input.Username = "alice2"
	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin_ReturnsVerifiableToken(t *testing.T) {
	_, svc := newAuthFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     domain.RoleViewer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, loggedIn, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, loggedIn.ID)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID {
		t.Errorf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleViewer {
		t.Errorf("expected role %s, got %v", domain.RoleViewer, claims["role"])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     domain.RoleViewer,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, svc := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteAccount_ViewerCascades(t *testing.T) {
	store, svc := newAuthFixture()
	creator := store.addUser(domain.RoleCreator, 0)
	viewer := store.addUser(domain.RoleViewer, 20)
	video := store.addVideo(creator.ID, 5)

	unlockRepo := &memUnlockRepo{store}
	if _, err := unlockRepo.Purchase(context.Background(), viewer.ID, video.ID, 5); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	historyRepo := &memHistoryRepo{store}
	if err := historyRepo.Upsert(context.Background(), &domain.WatchHistory{UserID: viewer.ID, VideoID: video.ID, Progress: 10}); err != nil {
		t.Fatalf("history: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), principalFor(viewer)); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, ok := store.users[viewer.ID]; ok {
		t.Error("viewer must be removed")
	}
	if len(store.unlocks) != 0 {
		t.Errorf("viewer grants must be removed, %d left", len(store.unlocks))
	}
	if len(store.history) != 0 {
		t.Errorf("viewer history must be removed, %d left", len(store.history))
	}
	if _, ok := store.videos[video.ID]; !ok {
		t.Error("the creator's video must survive a viewer deletion")
	}
}

func TestDeleteAccount_CreatorCascadesOwnedVideos(t *testing.T) {
	store, svc := newAuthFixture()
	creator := store.addUser(domain.RoleCreator, 0)
	viewer := store.addUser(domain.RoleViewer, 20)
	video := store.addVideo(creator.ID, 5)

	unlockRepo := &memUnlockRepo{store}
	if _, err := unlockRepo.Purchase(context.Background(), viewer.ID, video.ID, 5); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	commentRepo := &memCommentRepo{store}
	if _, err := commentRepo.Create(context.Background(), &domain.Comment{VideoID: video.ID, UserID: viewer.ID, Content: "hi"}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), principalFor(creator)); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, ok := store.users[creator.ID]; ok {
		t.Error("creator must be removed")
	}
	if len(store.videos) != 0 {
		t.Errorf("owned videos must be removed, %d left", len(store.videos))
	}
	if len(store.unlocks) != 0 {
		t.Errorf("grants on owned videos must be removed, %d left", len(store.unlocks))
	}
	if len(store.comment) != 0 {
		t.Errorf("comments on owned videos must be removed, %d left", len(store.comment))
	}
	if _, ok := store.users[viewer.ID]; !ok {
		t.Error("other users must survive")
	}
}

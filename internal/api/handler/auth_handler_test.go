package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	deleteFn   func(ctx context.Context, principal ports.Principal) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, principal ports.Principal) error {
	return s.deleteFn(ctx, principal)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Username != "alice" || input.Role != "viewer" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "u1", Username: input.Username, Role: input.Role, Coins: 20}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secret123","role":"viewer"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["coins"] != float64(20) {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"secret123","role":"viewer"}`)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", "not-json")

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_RejectsUnknownRole(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"eve","email":"eve@example.com","password":"secret123","role":"admin"}`)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Username: "alice", Role: "viewer"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret123"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"bad-one"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_DeleteMe(t *testing.T) {
	called := false
	stub := &stubAuthService{
		deleteFn: func(ctx context.Context, principal ports.Principal) error {
			called = true
			if principal.UserID != "u1" {
				t.Fatalf("unexpected principal: %+v", principal)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/v1/me", "")
	c.Set("user_id", "u1")
	c.Set("role", "viewer")

	if err := handler.DeleteMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthHandler_DeleteMe_MissingClaims(t *testing.T) {
	stub := &stubAuthService{
		deleteFn: func(ctx context.Context, principal ports.Principal) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/v1/me", "")

	err := handler.DeleteMe(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

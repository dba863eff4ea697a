package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

type stubCatalogService struct {
	uploadFn   func(ctx context.Context, principal ports.Principal, input ports.UploadVideoInput) (*domain.Video, error)
	setPriceFn func(ctx context.Context, principal ports.Principal, videoID string, coinCost int) (*domain.Video, error)
	getFn      func(ctx context.Context, principal *ports.Principal, videoID string) (*ports.CatalogItem, error)
	listFn     func(ctx context.Context, principal *ports.Principal) ([]ports.CatalogItem, error)
	deleteFn   func(ctx context.Context, principal ports.Principal, videoID string) error
}

func (s *stubCatalogService) UploadVideo(ctx context.Context, principal ports.Principal, input ports.UploadVideoInput) (*domain.Video, error) {
	return s.uploadFn(ctx, principal, input)
}

func (s *stubCatalogService) SetPrice(ctx context.Context, principal ports.Principal, videoID string, coinCost int) (*domain.Video, error) {
	return s.setPriceFn(ctx, principal, videoID, coinCost)
}

func (s *stubCatalogService) GetVideo(ctx context.Context, principal *ports.Principal, videoID string) (*ports.CatalogItem, error) {
	return s.getFn(ctx, principal, videoID)
}

func (s *stubCatalogService) ListCatalog(ctx context.Context, principal *ports.Principal) ([]ports.CatalogItem, error) {
	return s.listFn(ctx, principal)
}

func (s *stubCatalogService) ListOwn(ctx context.Context, principal ports.Principal) ([]*domain.Video, error) {
	return nil, nil
}

func (s *stubCatalogService) Channel(ctx context.Context, principal *ports.Principal, name string) (*ports.ChannelView, error) {
	return nil, domain.ErrChannelNotFound
}

func (s *stubCatalogService) SetupChannel(ctx context.Context, principal ports.Principal, update ports.ChannelUpdate) (*domain.User, error) {
	return nil, domain.ErrForbidden
}

func (s *stubCatalogService) DeleteVideo(ctx context.Context, principal ports.Principal, videoID string) error {
	return s.deleteFn(ctx, principal, videoID)
}

type stubEnqueuer struct {
	events []ports.ViewEventInput
}

func (q *stubEnqueuer) Enqueue(event ports.ViewEventInput) {
	q.events = append(q.events, event)
}

func TestVideoHandler_Watch_AccessGranted(t *testing.T) {
	stub := &stubCatalogService{
		getFn: func(ctx context.Context, principal *ports.Principal, videoID string) (*ports.CatalogItem, error) {
			return &ports.CatalogItem{
				Video:    &domain.Video{ID: videoID, Title: "t", Filename: "clip.mp4", CoinCost: 5},
				Unlocked: true,
				Access:   true,
			}, nil
		},
	}
	queue := &stubEnqueuer{}
	handler := NewVideoHandler(stub, queue)

	c, rec := viewerContext(t, http.MethodGet, "/v1/videos/v1/watch")
	c.SetParamNames("id")
	c.SetParamValues("v1")

	if err := handler.Watch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["stream_path"] != "/static/videos/clip.mp4" {
		t.Fatalf("unexpected stream path: %v", resp["stream_path"])
	}

	if len(queue.events) != 1 {
		t.Fatalf("expected 1 view event, got %d", len(queue.events))
	}
	if queue.events[0].ViewerKey != "viewer_1" {
		t.Fatalf("authenticated views must key on the user id, got %q", queue.events[0].ViewerKey)
	}
}

func TestVideoHandler_Watch_LockedVideo(t *testing.T) {
	stub := &stubCatalogService{
		getFn: func(ctx context.Context, principal *ports.Principal, videoID string) (*ports.CatalogItem, error) {
			return &ports.CatalogItem{
				Video:  &domain.Video{ID: videoID, CoinCost: 5},
				Access: false,
			}, nil
		},
	}
	queue := &stubEnqueuer{}
	handler := NewVideoHandler(stub, queue)

	c, _ := viewerContext(t, http.MethodGet, "/v1/videos/v1/watch")
	c.SetParamNames("id")
	c.SetParamValues("v1")

	err := handler.Watch(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %v", err)
	}
	if len(queue.events) != 0 {
		t.Fatalf("a denied watch must not count a view, got %d events", len(queue.events))
	}
}

func TestVideoHandler_Watch_AnonymousViewerKey(t *testing.T) {
	stub := &stubCatalogService{
		getFn: func(ctx context.Context, principal *ports.Principal, videoID string) (*ports.CatalogItem, error) {
			if principal != nil {
				t.Fatalf("expected anonymous principal")
			}
			return &ports.CatalogItem{
				Video:  &domain.Video{ID: videoID, Filename: "free.mp4", CoinCost: 0},
				Access: true,
			}, nil
		},
	}
	queue := &stubEnqueuer{}
	handler := NewVideoHandler(stub, queue)

	c, rec := newTestContext(t, http.MethodGet, "/v1/videos/v1/watch", "")
	c.SetParamNames("id")
	c.SetParamValues("v1")

	if err := handler.Watch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(queue.events) != 1 {
		t.Fatalf("expected 1 view event, got %d", len(queue.events))
	}
	if key := queue.events[0].ViewerKey; len(key) < 5 || key[:5] != "anon:" {
		t.Fatalf("anonymous views must key on the client address, got %q", key)
	}
}

func TestVideoHandler_Create_Success(t *testing.T) {
	stub := &stubCatalogService{
		uploadFn: func(ctx context.Context, principal ports.Principal, input ports.UploadVideoInput) (*domain.Video, error) {
			if input.Title != "my video" || input.CoinCost != 7 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Video{ID: "v1", Title: input.Title, CoinCost: input.CoinCost, CreatorID: principal.UserID}, nil
		},
	}
	handler := NewVideoHandler(stub, &stubEnqueuer{})

	c, rec := newTestContext(t, http.MethodPost, "/v1/videos",
		`{"title":"my video","description":"d","filename":"f.mp4","coin_cost":7}`)
	c.Set("user_id", "creator_1")
	c.Set("role", "creator")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestVideoHandler_Create_RejectsNegativeCost(t *testing.T) {
	stub := &stubCatalogService{
		uploadFn: func(ctx context.Context, principal ports.Principal, input ports.UploadVideoInput) (*domain.Video, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewVideoHandler(stub, &stubEnqueuer{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/videos",
		`{"title":"my video","description":"d","filename":"f.mp4","coin_cost":-1}`)
	c.Set("user_id", "creator_1")
	c.Set("role", "creator")

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestVideoHandler_SetPrice(t *testing.T) {
	stub := &stubCatalogService{
		setPriceFn: func(ctx context.Context, principal ports.Principal, videoID string, coinCost int) (*domain.Video, error) {
			if videoID != "v1" || coinCost != 9 {
				t.Fatalf("unexpected args: %s %d", videoID, coinCost)
			}
			return &domain.Video{ID: videoID, CoinCost: coinCost}, nil
		},
	}
	handler := NewVideoHandler(stub, &stubEnqueuer{})

	c, rec := newTestContext(t, http.MethodPatch, "/v1/videos/v1/price", `{"coin_cost":9}`)
	c.Set("user_id", "creator_1")
	c.Set("role", "creator")
	c.SetParamNames("id")
	c.SetParamValues("v1")

	if err := handler.SetPrice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["coin_cost"] != float64(9) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestVideoHandler_Delete_Forbidden(t *testing.T) {
	stub := &stubCatalogService{
		deleteFn: func(ctx context.Context, principal ports.Principal, videoID string) error {
			return domain.ErrForbidden
		},
	}
	handler := NewVideoHandler(stub, &stubEnqueuer{})

	c, _ := newTestContext(t, http.MethodDelete, "/v1/videos/v1", "")
	c.Set("user_id", "creator_2")
	c.Set("role", "creator")
	c.SetParamNames("id")
	c.SetParamValues("v1")

	err := handler.Delete(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

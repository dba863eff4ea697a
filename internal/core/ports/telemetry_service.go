package ports

import (
	"context"
	"time"

	"github.com/streampass/video-platform/internal/core/domain"
)

// ViewEventInput is a single watch-page render to count. ViewerKey identifies
// the watcher for dedup purposes only (user id, or a transport-derived key
// for anonymous viewers); it is never persisted with the counter.
type ViewEventInput struct {
	VideoID   string
	ViewerKey string
	Timestamp time.Time
}

// ProgressInput is a watch-progress checkpoint.
type ProgressInput struct {
	VideoID   string
	Progress  int
	Completed bool
}

// TelemetryService records view counts and watch history. Strictly
// observational: nothing here gates access.
type TelemetryService interface {
	RecordView(ctx context.Context, event ViewEventInput) error
	RecordProgress(ctx context.Context, principal Principal, input ProgressInput) error
	History(ctx context.Context, principal Principal) ([]*domain.WatchHistory, error)
}

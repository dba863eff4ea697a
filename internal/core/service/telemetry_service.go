package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

// ViewDeduper suppresses repeat view counts from the same viewer within a
// TTL window (backed by Redis in production).
type ViewDeduper interface {
	IsDuplicate(ctx context.Context, viewerKey, videoID string) (bool, error)
	Mark(ctx context.Context, viewerKey, videoID string) error
}

// TelemetryService records view counters and watch history. Downstream of
// the access gate; nothing here influences an access decision.
type telemetryService struct {
	videos  ports.VideoRepository
	history ports.HistoryRepository
	dedup   ViewDeduper
	log     zerolog.Logger
}

// NewTelemetryService returns a TelemetryService implementation.
func NewTelemetryService(
	videos ports.VideoRepository,
	history ports.HistoryRepository,
	dedup ViewDeduper,
	log zerolog.Logger,
) ports.TelemetryService {
	return &telemetryService{videos: videos, history: history, dedup: dedup, log: log}
}

// RecordView bumps the monotonic counter for a watch-page render, skipping
// repeats from the same viewer key inside the dedup window.
func (s *telemetryService) RecordView(ctx context.Context, event ports.ViewEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.ViewerKey, event.VideoID)
	if err != nil {
		s.log.Warn().Err(err).Str("video_id", event.VideoID).Msg("view dedup check failed, counting anyway")
	} else if isDup {
		s.log.Debug().Str("video_id", event.VideoID).Msg("duplicate view skipped")
		return nil
	}

	if err := s.videos.IncrementViews(ctx, event.VideoID); err != nil {
		return fmt.Errorf("record view: %w", err)
	}

	if markErr := s.dedup.Mark(ctx, event.ViewerKey, event.VideoID); markErr != nil {
		s.log.Warn().Err(markErr).Str("video_id", event.VideoID).Msg("failed to set view dedup key")
	}

	return nil
}

// RecordProgress upserts the viewer's watch-history row for the video. The
// (user, video) unique key makes retries harmless.
func (s *telemetryService) RecordProgress(ctx context.Context, principal ports.Principal, input ports.ProgressInput) error {
	if principal.Role != domain.RoleViewer {
		return fmt.Errorf("record progress: %w", domain.ErrForbidden)
	}

	if _, err := s.videos.FindByID(ctx, input.VideoID); err != nil {
		return fmt.Errorf("record progress: %w", err)
	}

	entry := &domain.WatchHistory{
		UserID:    principal.UserID,
		VideoID:   input.VideoID,
		Progress:  input.Progress,
		Completed: input.Completed,
		WatchedAt: time.Now().UTC(),
	}
	if err := s.history.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	return nil
}

// History returns the caller's watch history.
func (s *telemetryService) History(ctx context.Context, principal ports.Principal) ([]*domain.WatchHistory, error) {
	if principal.Role != domain.RoleViewer {
		return nil, fmt.Errorf("watch history: %w", domain.ErrForbidden)
	}
	entries, err := s.history.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("watch history: %w", err)
	}
	return entries, nil
}

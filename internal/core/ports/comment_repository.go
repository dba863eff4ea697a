package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// CommentRepository defines persistence for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByVideo returns all comments for a video ordered by creation time.
	ListByVideo(ctx context.Context, videoID string) ([]*domain.Comment, error)
	DeleteByVideo(ctx context.Context, videoID string) error
}

package ports

import (
	"context"

	"github.com/streampass/video-platform/internal/core/domain"
)

// AddCommentInput carries a new comment or reply. ParentID is empty for
// top-level comments.
type AddCommentInput struct {
	VideoID  string
	ParentID string
	Content  string
}

// CommentThread is a comment with its replies nested beneath it.
type CommentThread struct {
	Comment *domain.Comment
	Replies []CommentThread
}

// CommentService defines threaded commenting on videos.
type CommentService interface {
	Add(ctx context.Context, principal Principal, input AddCommentInput) (*domain.Comment, error)
	ListThreads(ctx context.Context, videoID string) ([]CommentThread, error)
}

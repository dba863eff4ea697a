package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

// CommentService implements threaded commenting. A plain tree over
// parent references; no consistency hazard beyond normal insert.
type CommentService struct {
	videos   ports.VideoRepository
	comments ports.CommentRepository
	logger   zerolog.Logger
}

func NewCommentService(videos ports.VideoRepository, comments ports.CommentRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{videos: videos, comments: comments, logger: logger}
}

// Add creates a comment or a reply. Replies must reference a parent on the
// same video.
func (s *CommentService) Add(ctx context.Context, principal ports.Principal, input ports.AddCommentInput) (*domain.Comment, error) {
	if _, err := s.videos.FindByID(ctx, input.VideoID); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	if input.ParentID != "" {
		parent, err := s.comments.FindByID(ctx, input.ParentID)
		if err != nil {
			return nil, fmt.Errorf("add comment: %w", err)
		}
		if parent.VideoID != input.VideoID {
			return nil, fmt.Errorf("add comment: parent on different video: %w", domain.ErrCommentNotFound)
		}
	}

	comment := &domain.Comment{
		VideoID:   input.VideoID,
		UserID:    principal.UserID,
		Username:  principal.Username,
		ParentID:  input.ParentID,
		Content:   input.Content,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return created, nil
}

// ListThreads returns the video's comments as a nested tree, top-level
// comments in creation order with replies beneath their parents.
func (s *CommentService) ListThreads(ctx context.Context, videoID string) ([]ports.CommentThread, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	comments, err := s.comments.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	children := make(map[string][]*domain.Comment)
	var roots []*domain.Comment
	for _, c := range comments {
		if c.ParentID == "" {
			roots = append(roots, c)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c)
	}

	var build func(c *domain.Comment) ports.CommentThread
	build = func(c *domain.Comment) ports.CommentThread {
		thread := ports.CommentThread{Comment: c}
		for _, reply := range children[c.ID] {
			thread.Replies = append(thread.Replies, build(reply))
		}
		return thread
	}

	threads := make([]ports.CommentThread, 0, len(roots))
	for _, root := range roots {
		threads = append(threads, build(root))
	}
	return threads, nil
}

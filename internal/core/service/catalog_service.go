package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

// CatalogService implements creator-side catalog management and the
// decorated read-side queries. Gate decisions are delegated to the access
// resolver; this service never re-implements them.
type CatalogService struct {
	users    ports.UserRepository
	videos   ports.VideoRepository
	unlocks  ports.UnlockRepository
	comments ports.CommentRepository
	history  ports.HistoryRepository
	resolver ports.UnlockService
	logger   zerolog.Logger
}

func NewCatalogService(
	users ports.UserRepository,
	videos ports.VideoRepository,
	unlocks ports.UnlockRepository,
	comments ports.CommentRepository,
	history ports.HistoryRepository,
	resolver ports.UnlockService,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		users:    users,
		videos:   videos,
		unlocks:  unlocks,
		comments: comments,
		history:  history,
		resolver: resolver,
		logger:   logger,
	}
}

// UploadVideo creates a catalog entry owned by the caller. Creator-only.
func (s *CatalogService) UploadVideo(ctx context.Context, principal ports.Principal, input ports.UploadVideoInput) (*domain.Video, error) {
	if principal.Role != domain.RoleCreator {
		return nil, fmt.Errorf("upload video: %w", domain.ErrForbidden)
	}
	if input.CoinCost < 0 {
		return nil, fmt.Errorf("upload video: %w", domain.ErrInvalidCoinCost)
	}

	video := &domain.Video{
		Title:       input.Title,
		Description: input.Description,
		Filename:    input.Filename,
		Thumbnail:   input.Thumbnail,
		CoinCost:    input.CoinCost,
		Duration:    input.Duration,
		IsPublic:    true,
		CreatorID:   principal.UserID,
		UploadedAt:  time.Now().UTC(),
	}

	created, err := s.videos.Create(ctx, video)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	s.logger.Info().
		Str("video_id", created.ID).
		Str("creator_id", principal.UserID).
		Int("coin_cost", created.CoinCost).
		Msg("video uploaded")

	return created, nil
}

// SetPrice changes coin_cost going forward. Owner-only. Existing grants keep
// the coins_spent frozen at their purchase time.
func (s *CatalogService) SetPrice(ctx context.Context, principal ports.Principal, videoID string, coinCost int) (*domain.Video, error) {
	if coinCost < 0 {
		return nil, fmt.Errorf("set price: %w", domain.ErrInvalidCoinCost)
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("set price: %w", err)
	}
	if video.CreatorID != principal.UserID {
		return nil, fmt.Errorf("set price: %w", domain.ErrForbidden)
	}

	if err := s.videos.UpdateCoinCost(ctx, videoID, coinCost); err != nil {
		return nil, fmt.Errorf("set price: %w", err)
	}

	s.logger.Info().
		Str("video_id", videoID).
		Int("old_cost", video.CoinCost).
		Int("new_cost", coinCost).
		Msg("video price updated")

	video.CoinCost = coinCost
	return video, nil
}

// GetVideo returns a single entry decorated with the caller's access state.
func (s *CatalogService) GetVideo(ctx context.Context, principal *ports.Principal, videoID string) (*ports.CatalogItem, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	item, err := s.decorate(ctx, principal, video)
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return item, nil
}

// ListCatalog returns all public videos with the caller's access state.
func (s *CatalogService) ListCatalog(ctx context.Context, principal *ports.Principal) ([]ports.CatalogItem, error) {
	videos, err := s.videos.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return s.decorateAll(ctx, principal, videos)
}

// ListOwn returns the creator's own videos, undecorated (owners always have
// access).
func (s *CatalogService) ListOwn(ctx context.Context, principal ports.Principal) ([]*domain.Video, error) {
	if principal.Role != domain.RoleCreator {
		return nil, fmt.Errorf("list own videos: %w", domain.ErrForbidden)
	}
	videos, err := s.videos.ListByCreator(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list own videos: %w", err)
	}
	return videos, nil
}

// Channel resolves a creator channel by name (case-insensitive) and returns
// the creator with their videos decorated for the caller.
func (s *CatalogService) Channel(ctx context.Context, principal *ports.Principal, name string) (*ports.ChannelView, error) {
	creator, err := s.users.FindByChannelName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("channel: %w", err)
	}

	videos, err := s.videos.ListByCreator(ctx, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("channel: %w", err)
	}

	items, err := s.decorateAll(ctx, principal, videos)
	if err != nil {
		return nil, err
	}

	return &ports.ChannelView{Creator: creator, Videos: items}, nil
}

// SetupChannel updates the caller's channel profile. Creator-only.
func (s *CatalogService) SetupChannel(ctx context.Context, principal ports.Principal, update ports.ChannelUpdate) (*domain.User, error) {
	if principal.Role != domain.RoleCreator {
		return nil, fmt.Errorf("setup channel: %w", domain.ErrForbidden)
	}

	if err := s.users.UpdateChannel(ctx, principal.UserID, update); err != nil {
		return nil, fmt.Errorf("setup channel: %w", err)
	}

	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("setup channel: %w", err)
	}

	s.logger.Info().
		Str("creator_id", principal.UserID).
		Str("channel_name", update.ChannelName).
		Msg("channel profile updated")

	return user, nil
}

// DeleteVideo removes the entry and explicitly cascades every dependent row.
// Dependents go first so a failure never leaves orphans pointing at a
// missing video.
func (s *CatalogService) DeleteVideo(ctx context.Context, principal ports.Principal, videoID string) error {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if video.CreatorID != principal.UserID {
		return fmt.Errorf("delete video: %w", domain.ErrForbidden)
	}

	if err := s.unlocks.DeleteByVideo(ctx, videoID); err != nil {
		return fmt.Errorf("delete video: cascade unlocks: %w", err)
	}
	if err := s.comments.DeleteByVideo(ctx, videoID); err != nil {
		return fmt.Errorf("delete video: cascade comments: %w", err)
	}
	if err := s.history.DeleteByVideo(ctx, videoID); err != nil {
		return fmt.Errorf("delete video: cascade history: %w", err)
	}
	if err := s.videos.Delete(ctx, videoID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	s.logger.Info().
		Str("video_id", videoID).
		Str("creator_id", principal.UserID).
		Msg("video deleted with cascades")

	return nil
}

func (s *CatalogService) decorate(ctx context.Context, principal *ports.Principal, video *domain.Video) (*ports.CatalogItem, error) {
	access, err := s.resolver.CanAccess(ctx, principal, video)
	if err != nil {
		return nil, err
	}

	unlocked := false
	if principal != nil && principal.Role == domain.RoleViewer {
		unlocked, err = s.unlocks.Exists(ctx, principal.UserID, video.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ports.CatalogItem{Video: video, Unlocked: unlocked, Access: access}, nil
}

func (s *CatalogService) decorateAll(ctx context.Context, principal *ports.Principal, videos []*domain.Video) ([]ports.CatalogItem, error) {
	items := make([]ports.CatalogItem, 0, len(videos))
	for _, v := range videos {
		item, err := s.decorate(ctx, principal, v)
		if err != nil {
			return nil, fmt.Errorf("decorate catalog: %w", err)
		}
		items = append(items, *item)
	}
	return items, nil
}

package handler

import (
	"time"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=creator viewer"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Catalog ---

type uploadVideoRequest struct {
	Title       string `json:"title"       validate:"required,max=120"`
	Description string `json:"description" validate:"required"`
	Filename    string `json:"filename"    validate:"required,max=255"`
	Thumbnail   string `json:"thumbnail"`
	CoinCost    int    `json:"coin_cost"   validate:"gte=0"`
	Duration    int    `json:"duration"    validate:"gte=0"`
}

type setPriceRequest struct {
	CoinCost int `json:"coin_cost" validate:"gte=0"`
}

type channelSetupRequest struct {
	ChannelName    string `json:"channel_name"    validate:"required,max=150"`
	Category       string `json:"category"        validate:"required,max=100"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
}

type videoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	CoinCost    int       `json:"coin_cost"`
	Duration    int       `json:"duration,omitempty"`
	Views       int64     `json:"views"`
	CreatorID   string    `json:"creator_id"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// catalogItemResponse decorates a video with the caller's access state.
type catalogItemResponse struct {
	videoResponse
	Unlocked bool `json:"unlocked"`
	Access   bool `json:"access"`
}

type channelResponse struct {
	ChannelName    string                `json:"channel_name"`
	Category       string                `json:"category,omitempty"`
	Bio            string                `json:"bio,omitempty"`
	ProfilePicture string                `json:"profile_picture,omitempty"`
	Videos         []catalogItemResponse `json:"videos"`
}

// watchResponse is returned once the access gate passes. StreamPath is the
// opaque media reference; serving bytes belongs to the media subsystem.
type watchResponse struct {
	Video      videoResponse `json:"video"`
	StreamPath string        `json:"stream_path"`
}

// --- Unlocks ---

type unlockResponse struct {
	VideoID        string `json:"video_id"`
	Status         string `json:"status"`
	CoinsSpent     int    `json:"coins_spent"`
	RemainingCoins int    `json:"remaining_coins"`
}

type unlockItemResponse struct {
	VideoID    string    `json:"video_id"`
	CoinsSpent int       `json:"coins_spent"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// --- Telemetry ---

type progressRequest struct {
	Progress  int  `json:"progress"  validate:"gte=0"`
	Completed bool `json:"completed"`
}

type historyItemResponse struct {
	VideoID   string    `json:"video_id"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
	WatchedAt time.Time `json:"watched_at"`
}

// --- Comments ---

type addCommentRequest struct {
	Content  string `json:"content"   validate:"required,max=2000"`
	ParentID string `json:"parent_id"`
}

type commentResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Username  string            `json:"username,omitempty"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	Replies   []commentResponse `json:"replies,omitempty"`
}

// --- Mappers ---

func toVideoResponse(v *domain.Video) videoResponse {
	return videoResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		CoinCost:    v.CoinCost,
		Duration:    v.Duration,
		Views:       v.Views,
		CreatorID:   v.CreatorID,
		UploadedAt:  v.UploadedAt,
	}
}

func toCatalogItemResponse(item ports.CatalogItem) catalogItemResponse {
	return catalogItemResponse{
		videoResponse: toVideoResponse(item.Video),
		Unlocked:      item.Unlocked,
		Access:        item.Access,
	}
}

func toCatalogItemResponses(items []ports.CatalogItem) []catalogItemResponse {
	out := make([]catalogItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCatalogItemResponse(item))
	}
	return out
}

func toCommentResponses(threads []ports.CommentThread) []commentResponse {
	out := make([]commentResponse, 0, len(threads))
	for _, t := range threads {
		out = append(out, commentResponse{
			ID:        t.Comment.ID,
			UserID:    t.Comment.UserID,
			Username:  t.Comment.Username,
			Content:   t.Comment.Content,
			CreatedAt: t.Comment.CreatedAt,
			Replies:   toCommentResponses(t.Replies),
		})
	}
	return out
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streampass/video-platform/internal/api/metrics"
	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

// UnlockHandler exposes the unlock engine over HTTP.
type UnlockHandler struct {
	unlocks ports.UnlockService
}

func NewUnlockHandler(unlocks ports.UnlockService) *UnlockHandler {
	return &UnlockHandler{unlocks: unlocks}
}

// Unlock handles POST /v1/videos/:id/unlock. Every repeat of a successful
// request lands on the already-unlocked outcome, so clients may retry
// freely; it is reported as 200, never as an error.
//
// @Summary      Unlock a video with coins
// @Tags         unlocks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video id"
// @Success      200  {object}  unlockResponse
// @Failure      402  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/videos/{id}/unlock [post]
func (h *UnlockHandler) Unlock(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := h.unlocks.RequestUnlock(c.Request().Context(), principal, c.Param("id"))
	metrics.UnlockDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UnlocksTotal.WithLabelValues(unlockFailureLabel(err)).Inc()
		return err
	}

	metrics.UnlocksTotal.WithLabelValues(result.Status).Inc()
	if result.Status == ports.StatusUnlocked {
		metrics.CoinsSpentTotal.Add(float64(result.CoinsSpent))
	}

	return c.JSON(http.StatusOK, unlockResponse{
		VideoID:        result.VideoID,
		Status:         result.Status,
		CoinsSpent:     result.CoinsSpent,
		RemainingCoins: result.RemainingCoins,
	})
}

// ListUnlocks handles GET /v1/me/unlocks.
//
// @Summary      List the caller's unlocked videos
// @Tags         unlocks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   unlockItemResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/me/unlocks [get]
func (h *UnlockHandler) ListUnlocks(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	unlocks, err := h.unlocks.ListUnlocks(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	out := make([]unlockItemResponse, 0, len(unlocks))
	for _, u := range unlocks {
		out = append(out, unlockItemResponse{
			VideoID:    u.VideoID,
			CoinsSpent: u.CoinsSpent,
			UnlockedAt: u.UnlockedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func unlockFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrVideoNotFound):
		return "not_found"
	default:
		if _, ok := domain.IsInsufficientCoins(err); ok {
			return "insufficient_coins"
		}
		return "error"
	}
}

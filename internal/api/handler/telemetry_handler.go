package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streampass/video-platform/internal/core/ports"
)

// TelemetryHandler handles watch-progress checkpoints and history listings.
type TelemetryHandler struct {
	telemetry ports.TelemetryService
}

func NewTelemetryHandler(telemetry ports.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetry: telemetry}
}

// Progress handles POST /v1/videos/:id/progress — an idempotent upsert of
// the caller's watch position.
//
// @Summary      Record watch progress
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Video id"
// @Param        body  body      progressRequest  true  "Progress checkpoint"
// @Success      204
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/videos/{id}/progress [post]
func (h *TelemetryHandler) Progress(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req progressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.telemetry.RecordProgress(c.Request().Context(), principal, ports.ProgressInput{
		VideoID:   c.Param("id"),
		Progress:  req.Progress,
		Completed: req.Completed,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// History handles GET /v1/me/history.
//
// @Summary      List the caller's watch history
// @Tags         telemetry
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   historyItemResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/me/history [get]
func (h *TelemetryHandler) History(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	entries, err := h.telemetry.History(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	out := make([]historyItemResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyItemResponse{
			VideoID:   e.VideoID,
			Progress:  e.Progress,
			Completed: e.Completed,
			WatchedAt: e.WatchedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

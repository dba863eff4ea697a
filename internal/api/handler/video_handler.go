package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streampass/video-platform/internal/api/metrics"
	"github.com/streampass/video-platform/internal/core/ports"
)

// ViewEnqueuer is the interface the watch path uses to hand view events to
// the telemetry dispatcher without blocking the response.
type ViewEnqueuer interface {
	Enqueue(event ports.ViewEventInput)
}

// VideoHandler handles catalog and watch-page operations.
type VideoHandler struct {
	catalog ports.CatalogService
	views   ViewEnqueuer
}

func NewVideoHandler(catalog ports.CatalogService, views ViewEnqueuer) *VideoHandler {
	return &VideoHandler{catalog: catalog, views: views}
}

// List handles GET /v1/videos — the public catalog, decorated with the
// caller's unlocked/access state when authenticated.
//
// @Summary      List the public catalog
// @Tags         videos
// @Produce      json
// @Success      200  {array}   catalogItemResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/videos [get]
func (h *VideoHandler) List(c echo.Context) error {
	items, err := h.catalog.ListCatalog(c.Request().Context(), optionalPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCatalogItemResponses(items))
}

// Get handles GET /v1/videos/:id — metadata plus the caller's access state.
//
// @Summary      Get a video
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video id"
// @Success      200  {object}  catalogItemResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/videos/{id} [get]
func (h *VideoHandler) Get(c echo.Context) error {
	item, err := h.catalog.GetVideo(c.Request().Context(), optionalPrincipal(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCatalogItemResponse(*item))
}

// Create handles POST /v1/videos — creator upload of catalog metadata.
//
// @Summary      Upload a video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      uploadVideoRequest  true  "Video metadata"
// @Success      201   {object}  videoResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/videos [post]
func (h *VideoHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req uploadVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	video, err := h.catalog.UploadVideo(c.Request().Context(), principal, ports.UploadVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Filename:    req.Filename,
		Thumbnail:   req.Thumbnail,
		CoinCost:    req.CoinCost,
		Duration:    req.Duration,
	})
	if err != nil {
		return err
	}

	metrics.VideosUploadedTotal.Inc()
	return c.JSON(http.StatusCreated, toVideoResponse(video))
}

// ListOwn handles GET /v1/me/videos — the creator dashboard listing.
//
// @Summary      List the caller's own videos
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   videoResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/me/videos [get]
func (h *VideoHandler) ListOwn(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	videos, err := h.catalog.ListOwn(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	out := make([]videoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoResponse(v))
	}
	return c.JSON(http.StatusOK, out)
}

// SetPrice handles PATCH /v1/videos/:id/price — owner-only price change.
//
// @Summary      Update a video's coin price
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Video id"
// @Param        body  body      setPriceRequest  true  "New price"
// @Success      200   {object}  videoResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/videos/{id}/price [patch]
func (h *VideoHandler) SetPrice(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req setPriceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	video, err := h.catalog.SetPrice(c.Request().Context(), principal, c.Param("id"), req.CoinCost)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /v1/videos/:id — owner-only removal with cascades.
//
// @Summary      Delete a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Video id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/videos/{id} [delete]
func (h *VideoHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteVideo(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Watch handles GET /v1/videos/:id/watch. The access resolver is the only
// gate; on success the view event is enqueued and the opaque stream
// reference returned. Counting happens off the request path and never
// blocks or fails the render.
//
// @Summary      Watch a video
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video id"
// @Success      200  {object}  watchResponse
// @Failure      402  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/videos/{id}/watch [get]
func (h *VideoHandler) Watch(c echo.Context) error {
	principal := optionalPrincipal(c)

	item, err := h.catalog.GetVideo(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	if !item.Access {
		return echo.NewHTTPError(http.StatusPaymentRequired, "video locked")
	}

	h.views.Enqueue(ports.ViewEventInput{
		VideoID:   item.Video.ID,
		ViewerKey: viewerKey(c, principal),
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, watchResponse{
		Video:      toVideoResponse(item.Video),
		StreamPath: "/static/videos/" + item.Video.Filename,
	})
}

// viewerKey identifies the watcher for view dedup only: the user id when
// authenticated, the client address otherwise.
func viewerKey(c echo.Context, principal *ports.Principal) string {
	if principal != nil {
		return principal.UserID
	}
	return "anon:" + c.RealIP()
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streampass/video-platform/internal/core/ports"
)

// ChannelHandler handles creator channel pages and profile setup.
type ChannelHandler struct {
	catalog ports.CatalogService
}

func NewChannelHandler(catalog ports.CatalogService) *ChannelHandler {
	return &ChannelHandler{catalog: catalog}
}

// Get handles GET /v1/channels/:name — the public channel page. Name
// matching is case-insensitive. Anonymous requests are allowed.
//
// @Summary      View a creator channel
// @Tags         channels
// @Produce      json
// @Param        name  path      string  true  "Channel name"
// @Success      200   {object}  channelResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/channels/{name} [get]
func (h *ChannelHandler) Get(c echo.Context) error {
	view, err := h.catalog.Channel(c.Request().Context(), optionalPrincipal(c), c.Param("name"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, channelResponse{
		ChannelName:    view.Creator.ChannelName,
		Category:       view.Creator.Category,
		Bio:            view.Creator.Bio,
		ProfilePicture: view.Creator.ProfilePicture,
		Videos:         toCatalogItemResponses(view.Videos),
	})
}

// Setup handles POST /v1/channel/setup — creator channel profile update.
//
// @Summary      Set up the caller's channel profile
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      channelSetupRequest  true  "Channel profile"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/channel/setup [post]
func (h *ChannelHandler) Setup(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req channelSetupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.catalog.SetupChannel(c.Request().Context(), principal, ports.ChannelUpdate{
		ChannelName:    req.ChannelName,
		Category:       req.Category,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

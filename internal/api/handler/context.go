package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streampass/video-platform/internal/core/ports"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call: user id and role must both be present,
// proving the middleware ran and the token carried a usable identity.
func ctxPrincipal(c echo.Context) (ports.Principal, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get("username").(string)
	return ports.Principal{UserID: userID, Username: username, Role: role}, nil
}

// optionalPrincipal returns the principal when one was injected and nil for
// anonymous requests. Used on read paths where OptionalAuth applies.
func optionalPrincipal(c echo.Context) *ports.Principal {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return nil
	}
	username, _ := c.Get("username").(string)
	return &ports.Principal{UserID: userID, Username: username, Role: role}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/altarmaker/altarmaker-api/internal/api/middleware"
)

// ctxUserID extracts the authenticated user id injected by RequireAuth. Its
// presence proves the middleware ran; handlers fail fast with 401 otherwise
// instead of issuing unscoped store queries.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tickethub/ticketing-api/internal/api/middleware"
)

// ctxIdentity extracts the identity attached by the Identity middleware. The
// gateway never rejects on its own, so every handler that needs a principal
// must call this and fail closed when none was attached.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role, nil
}

// ctxViewerID is the optional-identity variant: empty string for anonymous.
func ctxViewerID(c echo.Context) string {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	return userID
}

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tickethub/ticketing-api/internal/auth/token"
)

// Context keys set by Identity for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Identity verifies a bearer access token, when one is present, and attaches
// {id, role} to the request context. It never rejects: a missing, malformed,
// expired, or badly signed token leaves the request anonymous and lets it
// proceed. Enforcing that an identity is present is each handler's job —
// several routes deliberately serve both anonymous and personalized views.
func Identity(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			identity, err := codec.VerifyAccess(strings.TrimSpace(parts[1]))
			if err != nil {
				// Anonymous on any verification failure; the failure kind is
				// never surfaced to the client.
				return next(c)
			}

			c.Set(CtxUserID, identity.UserID)
			c.Set(CtxRole, identity.Role)

			return next(c)
		}
	}
}

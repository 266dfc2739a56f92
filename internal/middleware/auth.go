package middleware // middleware provides reusable HTTP middleware functions

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-report-api/internal/auth"
	"github.com/ecotrack/waste-report-api/internal/model"
)

// identityKey is the context key under which Auth stores the resolved
// caller. Handlers read it through IdentityFrom.
const identityKey = "identity"

// UserLoader is the read access the resolver needs from the store.
type UserLoader interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Auth returns an Echo middleware that resolves a Bearer access token into a
// verified caller identity. It verifies the token, loads the referenced user
// and checks the active flag; the Identity then rides the request context so
// handlers never touch the token again. This is the sole gate in front of
// every protected route.
//
// All failure modes (missing header, bad signature, expired or malformed
// token, deleted or deactivated user) collapse into the same 401 body so the
// response never reveals which check failed.
func Auth(tokens *auth.TokenService, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			uid, err := tokens.Verify(raw, time.Now().UTC())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil || !u.IsActive {
				// A token for a deleted or deactivated account is as dead
				// as a forged one.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(identityKey, auth.Identity{ID: u.ID, IsSuperuser: u.IsSuperuser})
			return next(c)
		}
	}
}

// IdentityFrom returns the caller identity stored by Auth. The boolean is
// false on routes that were not wrapped by the middleware.
func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(identityKey).(auth.Identity)
	return id, ok
}

// RequireSuperuser returns a middleware that rejects non-superuser callers
// with 403. It assumes Auth ran earlier in the chain.
func RequireSuperuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			if !auth.CanViewOtherUser(id) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

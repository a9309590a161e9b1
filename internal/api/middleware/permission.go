package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/domain"
)

// RequirePermission rejects callers whose token lacks every listed permission.
// The services re-check authorization; this gate keeps unauthorized traffic
// out of the handlers entirely.
func RequirePermission(perms ...domain.Permission) echo.MiddlewareFunc {
	required := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		required[string(p)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			held, _ := c.Get(CtxPermissions).([]string)
			for _, p := range held {
				if _, ok := required[p]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

// RequireKind restricts a route to one account kind.
func RequireKind(kind domain.AccountKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get(CtxKind).(string)
			if got != string(kind) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

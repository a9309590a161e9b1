package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/api/middleware"
	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// ctxActor assembles the service Actor from the claims injected by the Auth
// middleware. A missing account id means the middleware did not run; fail with
// 401 before any service call.
func ctxActor(c echo.Context) (ports.Actor, error) {
	actor := optionalActor(c)
	if actor.ID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// optionalActor returns the actor when claims are present and the zero Actor
// otherwise. Public routes behind OptionalAuth use it.
func optionalActor(c echo.Context) ports.Actor {
	id, _ := c.Get(middleware.CtxAccountID).(string)
	kind, _ := c.Get(middleware.CtxKind).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	rawPerms, _ := c.Get(middleware.CtxPermissions).([]string)

	perms := make([]domain.Permission, 0, len(rawPerms))
	for _, p := range rawPerms {
		perms = append(perms, domain.Permission(p))
	}

	return ports.Actor{
		ID:          id,
		Kind:        domain.AccountKind(kind),
		Role:        domain.Role(role),
		Permissions: perms,
	}
}

// viewerFingerprint identifies the viewer for view dedup: the account id when
// logged in, a hash of the client IP otherwise. The raw IP never reaches the
// dedup store.
func viewerFingerprint(c echo.Context) string {
	if id, _ := c.Get(middleware.CtxAccountID).(string); id != "" {
		return id
	}
	sum := sha256.Sum256([]byte(c.RealIP()))
	return hex.EncodeToString(sum[:8])
}

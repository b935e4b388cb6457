package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// errNoUser is returned by actorID when no authenticated user is present in
// the request context.
var errNoUser = errors.New("no authenticated user in context")

// actorID extracts the authenticated user's ID stored by the auth
// middleware.  Handlers behind the middleware can treat a failure here as a
// broken invariant and answer 401.
func actorID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	id, ok := v.(uint64)
	if !ok || id == 0 {
		return 0, errNoUser
	}
	return id, nil
}

package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SamuraiNinja01/movie-catalog/internal/repository"
	"github.com/SamuraiNinja01/movie-catalog/internal/utils"
)

// Auth returns an Echo middleware that validates a Bearer access token and
// resolves the token's subject to a live user row.  On success the resolved
// user is stored in the request context under "user" (repository.User) and
// "user_id" (uint64) for the duration of this request only; nothing is
// cached across requests.  A missing header, a token that fails signature or
// expiry verification, and a subject that no longer resolves to a user all
// produce the same 401 response.  There is no revocation list: any token
// that verifies and whose subject still exists is honored until it expires.
func Auth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			u, err := users.GetByID(ctx, uid)
			if err != nil {
				// sql.ErrNoRows and transient DB failures alike: the caller
				// learns only that the credential did not check out.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user", u)
			c.Set("user_id", u.ID)
			return next(c)
		}
	}
}

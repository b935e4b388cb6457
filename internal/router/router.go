package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/SamuraiNinja01/movie-catalog/internal/config"
	"github.com/SamuraiNinja01/movie-catalog/internal/handler"
	"github.com/SamuraiNinja01/movie-catalog/internal/middleware"
	"github.com/SamuraiNinja01/movie-catalog/internal/repository"
)

// Handlers groups every handler the route table needs.
type Handlers struct {
	Auth     *handler.AuthHandler
	Movies   *handler.MovieHandler
	Ratings  *handler.RatingHandler
	Comments *handler.CommentHandler
}

// Register wires the full route table onto the provided Echo instance.
// Public reads carry the Redis response cache; every route sits behind the
// rate limiter; mutations on the catalog require a valid bearer token whose
// subject resolves to a live user.
func Register(e *echo.Echo, cfg config.Config, h Handlers, users *repository.UserRepo, rdb *redis.Client) {
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Account endpoints: no session required.
	e.POST("/register", h.Auth.Register)
	e.POST("/token", h.Auth.Login)

	guard := middleware.Auth(cfg.JWTSecret, users)
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	// Public catalog reads.
	e.GET("/movies/", h.Movies.List, cache)
	e.GET("/movies/:id", h.Movies.Get, cache)
	e.GET("/movies/:id/ratings", h.Ratings.List, cache)
	e.GET("/movies/:id/comments", h.Comments.List, cache)

	// Catalog mutations: bearer token required.
	e.POST("/movies/", h.Movies.Create, guard)
	e.PUT("/movies/:id", h.Movies.Update, guard)
	e.DELETE("/movies/:id", h.Movies.Delete, guard)
	e.POST("/movies/:id/ratings", h.Ratings.Create, guard)
	e.POST("/movies/:id/comments", h.Comments.Create, guard)
}

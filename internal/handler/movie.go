package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SamuraiNinja01/movie-catalog/internal/queue"
	"github.com/SamuraiNinja01/movie-catalog/internal/repository"
	"github.com/SamuraiNinja01/movie-catalog/internal/service"
)

// defaultPageSize and maxPageSize bound the public listing.  The cap keeps a
// single request from dragging the whole catalog through one query.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// MovieHandler bundles dependencies for the catalog CRUD endpoints.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

func NewMovieHandler(m *repository.MovieRepo) *MovieHandler {
	return &MovieHandler{Movies: m}
}

// movieDTO is the public shape of a movie.  Ownership is not exposed.
type movieDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toDTO(m *repository.Movie) movieDTO {
	return movieDTO{ID: m.ID, Title: m.Title, Description: m.Description}
}

// List handles GET /movies/ and returns a page of the catalog.  skip defaults
// to 0, limit to 10, and limit is clamped to [1,100].  Rows come back ordered
// by id ascending so pages are stable.
func (h *MovieHandler) List(c echo.Context) error {
	skip := 0
	if v := c.QueryParam("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			skip = n
		}
	}
	limit := defaultPageSize
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]movieDTO, 0, len(movies))
	for _, m := range movies {
		out = append(out, toDTO(m))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /movies/:id, a public read.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toDTO(m))
}

// Create handles POST /movies/ for an authenticated user.  The acting user
// becomes the owner; ownership is fixed for the life of the record.
func (h *MovieHandler) Create(c echo.Context) error {
	uid, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := &repository.Movie{Title: title, Description: body.Description, OwnerID: uid}
	if err := h.Movies.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}

	// Fire-and-forget activity event; broker trouble never fails the request.
	go service.PublishMovieEvent(queue.MovieEvent{
		Action:     queue.ActionCreated,
		MovieID:    m.ID,
		Title:      m.Title,
		OwnerID:    m.OwnerID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toDTO(m))
}

// Update handles PUT /movies/:id.  A movie that does not exist and a movie
// owned by someone else produce the same 404: the ownership check is folded
// into the lookup on purpose so the endpoint cannot be used to enumerate
// other users' movies.
func (h *MovieHandler) Update(c echo.Context) error {
	uid, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.UpdateOwned(ctx, id, uid, title, body.Description); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, movieDTO{ID: id, Title: title, Description: body.Description})
}

// Delete handles DELETE /movies/:id with the same collapsed 404 as Update.
func (h *MovieHandler) Delete(c echo.Context) error {
	uid, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.DeleteOwned(ctx, id, uid); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	go service.PublishMovieEvent(queue.MovieEvent{
		Action:     queue.ActionDeleted,
		MovieID:    id,
		OwnerID:    uid,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "movie deleted successfully"})
}

package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SamuraiNinja01/movie-catalog/internal/repository"
)

// RatingHandler bundles dependencies for the rating endpoints.
type RatingHandler struct {
	Movies  *repository.MovieRepo
	Ratings *repository.RatingRepo
}

func NewRatingHandler(m *repository.MovieRepo, r *repository.RatingRepo) *RatingHandler {
	return &RatingHandler{Movies: m, Ratings: r}
}

// Create handles POST /movies/:id/ratings.  The movie must exist; the value
// must fall in [0,10].
func (h *RatingHandler) Create(c echo.Context) error {
	if _, err := actorID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Value float64 `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.Value < 0 || body.Value > 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value must be between 0 and 10"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	rt := &repository.Rating{MovieID: movieID, Value: body.Value}
	if err := h.Ratings.Create(ctx, rt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create rating"})
	}
	return c.JSON(http.StatusCreated, rt)
}

// List handles GET /movies/:id/ratings, a public read returning all ratings
// plus their average.  The average is null when the movie has no ratings.
func (h *RatingHandler) List(c echo.Context) error {
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	items, err := h.Ratings.ListByMovie(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	avg, ok, err := h.Ratings.AverageByMovie(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var avgOut interface{}
	if ok {
		avgOut = avg
	}
	if items == nil {
		items = []*repository.Rating{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "average": avgOut})
}

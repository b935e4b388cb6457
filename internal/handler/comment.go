package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SamuraiNinja01/movie-catalog/internal/repository"
)

// CommentHandler bundles dependencies for the comment endpoints.
type CommentHandler struct {
	Movies   *repository.MovieRepo
	Comments *repository.CommentRepo
}

func NewCommentHandler(m *repository.MovieRepo, c *repository.CommentRepo) *CommentHandler {
	return &CommentHandler{Movies: m, Comments: c}
}

// Create handles POST /movies/:id/comments.  parent_id, when present, must
// reference an existing comment on the same movie: the reference is checked
// here at the API boundary, not left to the foreign key.
func (h *CommentHandler) Create(c echo.Context) error {
	uid, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Text     string  `json:"text"`
		ParentID *uint64 `json:"parent_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	text := strings.TrimSpace(body.Text)
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	cm := &repository.Comment{
		MovieID:  movieID,
		AuthorID: uid,
		Body:     text,
		ParentID: body.ParentID,
	}
	if err := h.Comments.Create(ctx, cm); err != nil {
		if err == repository.ErrCommentNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "parent comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create comment"})
	}
	return c.JSON(http.StatusCreated, cm)
}

// List handles GET /movies/:id/comments, a public read returning the flat
// comment list in id order; clients thread replies via parent_id.
func (h *CommentHandler) List(c echo.Context) error {
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

	items, err := h.Comments.ListByMovie(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*repository.Comment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Comment represents a user comment on a movie.  ParentID links a reply to
// another comment on the same movie, forming a thread; top-level comments
// have a NULL parent.
type Comment struct {
	ID        uint64    `json:"id"`
	MovieID   uint64    `json:"movie_id"`
	AuthorID  uint64    `json:"author_id"`
	Body      string    `json:"text"`
	ParentID  *uint64   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentRepo encapsulates database queries for movie comments.
type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a comment.  When ParentID is set, the parent must be an
// existing comment on the same movie; the check happens here rather than
// relying on the FK alone so the API can answer with a clean error instead
// of a constraint violation.
func (r *CommentRepo) Create(ctx context.Context, c *Comment) error {
	if c.ParentID != nil {
		var parentMovie uint64
		err := r.db.QueryRowContext(ctx,
			"SELECT movie_id FROM comments WHERE id = ?", *c.ParentID).Scan(&parentMovie)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCommentNotFound
			}
			return err
		}
		if parentMovie != c.MovieID {
			return ErrCommentNotFound
		}
	}
	const q = "INSERT INTO comments (movie_id, author_id, body, parent_id) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, c.MovieID, c.AuthorID, c.Body, c.ParentID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qSelect = "SELECT created_at FROM comments WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.CreatedAt)
}

// ListByMovie returns all comments for a movie ordered by id ascending.  The
// list is flat; clients reconstruct threads from parent_id.
func (r *CommentRepo) ListByMovie(ctx context.Context, movieID uint64) ([]*Comment, error) {
	const q = `SELECT id, movie_id, author_id, body, parent_id, created_at
	           FROM comments WHERE movie_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Comment
	for rows.Next() {
		c := new(Comment)
		if err := rows.Scan(&c.ID, &c.MovieID, &c.AuthorID, &c.Body, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// This file defines the Movie model and repository methods for catalog CRUD.
// A movie belongs to the user who created it; ownership never changes after
// creation.  Mutating methods filter on owner_id inside the SQL itself so
// that "not found" and "owned by someone else" are indistinguishable to the
// caller.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Movie represents a movie record persisted in the database.  OwnerID
// references users.id and is fixed at creation.
type Movie struct {
	ID          uint64
	Title       string
	Description string
	OwnerID     uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.  This
// allows dependency injection of the database in tests and at startup.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie.  On success the movie's ID, CreatedAt and
// UpdatedAt fields are populated from the stored row.
func (r *MovieRepo) Create(ctx context.Context, m *Movie) error {
	const qInsert = "INSERT INTO movies (title, description, owner_id) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, m.Title, m.Description, m.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM movies WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(&m.CreatedAt, &m.UpdatedAt)
}

// GetByID fetches a movie by its ID regardless of owner.  Reads are public,
// so no ownership filter applies here.  Returns ErrMovieNotFound when no row
// exists.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*Movie, error) {
	const q = "SELECT id, title, description, owner_id, created_at, updated_at FROM movies WHERE id = ?"
	var m Movie
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Description, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns a page of movies ordered by id ascending.  The ascending id
// order makes pagination stable: a movie never moves between pages unless
// rows are inserted or deleted around it.
func (r *MovieRepo) List(ctx context.Context, skip, limit int) ([]*Movie, error) {
	const q = `SELECT id, title, description, owner_id, created_at, updated_at
	           FROM movies ORDER BY id ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Movie
	for rows.Next() {
		m := new(Movie)
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOwned updates title and description when the movie belongs to the
// given owner.  Zero rows affected means the movie is absent or owned by
// someone else; both cases surface as ErrMovieNotFound on purpose so that
// the API never confirms the existence of another user's movie.
func (r *MovieRepo) UpdateOwned(ctx context.Context, id, ownerID uint64, title, description string) error {
	const q = `UPDATE movies
	           SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, title, description, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// DeleteOwned removes a movie and its dependent ratings and comments,
// provided it belongs to the given owner.  The whole removal runs in one
// transaction so a failure partway leaves the catalog untouched.  Absence
// and foreign ownership both return ErrMovieNotFound, same as UpdateOwned.
func (r *MovieRepo) DeleteOwned(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, "SELECT owner_id FROM movies WHERE id = ?", id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMovieNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrMovieNotFound
		return err
	}
	// Replies reference their parent comment, so comments go before movies;
	// clearing parent_id first keeps the self-referencing FK satisfied
	// regardless of deletion order within the table.
	if _, err = tx.ExecContext(ctx, "UPDATE comments SET parent_id = NULL WHERE movie_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM comments WHERE movie_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM ratings WHERE movie_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}

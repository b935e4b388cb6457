package repository

import (
	"context"
	"database/sql"
)

// Rating represents a numeric score attached to a movie.
type Rating struct {
	ID      uint64  `json:"id"`
	MovieID uint64  `json:"movie_id"`
	Value   float64 `json:"value"`
}

// RatingRepo encapsulates database queries for movie ratings.
type RatingRepo struct {
	db *sql.DB
}

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// Create inserts a rating for a movie and populates its ID.
func (r *RatingRepo) Create(ctx context.Context, rt *Rating) error {
	const q = "INSERT INTO ratings (movie_id, value) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, q, rt.MovieID, rt.Value)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// ListByMovie returns all ratings for a movie ordered by id.
func (r *RatingRepo) ListByMovie(ctx context.Context, movieID uint64) ([]*Rating, error) {
	const q = "SELECT id, movie_id, value FROM ratings WHERE movie_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Rating
	for rows.Next() {
		rt := new(Rating)
		if err := rows.Scan(&rt.ID, &rt.MovieID, &rt.Value); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AverageByMovie returns the mean rating for a movie.  A movie with no
// ratings yields ok=false rather than a misleading zero.
func (r *RatingRepo) AverageByMovie(ctx context.Context, movieID uint64) (float64, bool, error) {
	const q = "SELECT AVG(value) FROM ratings WHERE movie_id = ?"
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, q, movieID).Scan(&avg); err != nil {
		return 0, false, err
	}
	if !avg.Valid {
		return 0, false, nil
	}
	return avg.Float64, true, nil
}

// Package repository defines error values that are reused across multiple
// repositories.  These sentinels let handlers distinguish failure scenarios
// without string matching: ErrUsernameTaken maps to HTTP 400 at registration,
// the *NotFound values map to HTTP 404.
package repository

import "errors"

// ErrUsernameTaken is returned when a registration collides with an existing
// username, whether caught by the pre-check or by the UNIQUE constraint.
var ErrUsernameTaken = errors.New("username already taken")

// ErrMovieNotFound is returned when a movie does not exist.  Ownership-scoped
// updates and deletes return it as well when the movie exists but belongs to
// another user: a caller cannot tell "absent" from "not yours", which keeps
// other users' catalogs unenumerable.  That collapsing is deliberate.
var ErrMovieNotFound = errors.New("movie not found")

// ErrCommentNotFound is returned when a parent comment referenced by a new
// reply does not exist on the same movie.
var ErrCommentNotFound = errors.New("comment not found")

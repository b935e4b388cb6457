package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema holds the catalog tables.  CREATE TABLE IF NOT EXISTS keeps startup
// idempotent.  The UNIQUE index on users.username is the real guard against
// the register pre-check race: two concurrent registrations can both pass the
// existence check, but only one insert survives.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(190) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS movies (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		owner_id    BIGINT UNSIGNED NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_movies_owner (owner_id),
		CONSTRAINT fk_movies_owner FOREIGN KEY (owner_id) REFERENCES users (id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id       BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		movie_id BIGINT UNSIGNED NOT NULL,
		value    DOUBLE NOT NULL,
		KEY idx_ratings_movie (movie_id),
		CONSTRAINT fk_ratings_movie FOREIGN KEY (movie_id) REFERENCES movies (id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		movie_id   BIGINT UNSIGNED NOT NULL,
		author_id  BIGINT UNSIGNED NOT NULL,
		body       TEXT NOT NULL,
		parent_id  BIGINT UNSIGNED NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_comments_movie (movie_id),
		CONSTRAINT fk_comments_movie FOREIGN KEY (movie_id) REFERENCES movies (id),
		CONSTRAINT fk_comments_author FOREIGN KEY (author_id) REFERENCES users (id),
		CONSTRAINT fk_comments_parent FOREIGN KEY (parent_id) REFERENCES comments (id)
	) ENGINE=InnoDB`,
}

// EnsureSchema creates the catalog tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

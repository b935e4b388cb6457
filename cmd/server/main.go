package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/SamuraiNinja01/movie-catalog/internal/config"
	"github.com/SamuraiNinja01/movie-catalog/internal/database"
	"github.com/SamuraiNinja01/movie-catalog/internal/handler"
	"github.com/SamuraiNinja01/movie-catalog/internal/queue"
	"github.com/SamuraiNinja01/movie-catalog/internal/repository"
	"github.com/SamuraiNinja01/movie-catalog/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil disables caching and rate limiting
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	ratings := repository.NewRatingRepo(db)
	comments := repository.NewCommentRepo(db)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Movies:   handler.NewMovieHandler(movies),
		Ratings:  handler.NewRatingHandler(movies, ratings),
		Comments: handler.NewCommentHandler(movies, comments),
	}

	e := echo.New()
	router.Register(e, cfg, h, users, rdb)

	// Background consumer for catalog activity events.  It reconnects on its
	// own; a dead broker only costs the activity log.
	go func() {
		if err := queue.StartMovieEventsConsumer(); err != nil {
			log.Printf("movie events consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

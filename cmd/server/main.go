package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/fitlink/fitlink-backend/internal/config"
	"github.com/fitlink/fitlink-backend/internal/database"
	"github.com/fitlink/fitlink-backend/internal/handler"
	"github.com/fitlink/fitlink-backend/internal/queue"
	"github.com/fitlink/fitlink-backend/internal/repository"
	"github.com/fitlink/fitlink-backend/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	friends := repository.NewFriendRepo(db)
	routines := repository.NewRoutineRepo(db)
	exercises := repository.NewExerciseRepo(db)
	records := repository.NewRecordRepo(db)
	photos := repository.NewPhotoRepo(db)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Users:    handler.NewUserHandler(users, records),
		Friends:  handler.NewFriendHandler(friends),
		Routines: handler.NewRoutineHandler(routines),
		Exercise: handler.NewExerciseHandler(exercises),
		Records:  handler.NewRecordHandler(records),
		Photos:   handler.NewPhotoHandler(photos, users),
	}

	// Nil client disables caching and rate limiting instead of failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	go func() {
		if err := queue.StartFeedConsumer(); err != nil {
			log.Printf("feed consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, h, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

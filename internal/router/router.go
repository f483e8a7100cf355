// Package router defines how HTTP routes are registered for the API.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/fitlink/fitlink-backend/internal/config"
	"github.com/fitlink/fitlink-backend/internal/handler"
	"github.com/fitlink/fitlink-backend/internal/middleware"
)

// Handlers collects every handler the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Friends  *handler.FriendHandler
	Routines *handler.RoutineHandler
	Exercise *handler.ExerciseHandler
	Records  *handler.RecordHandler
	Photos   *handler.PhotoHandler
}

// Register wires all application routes onto the Echo instance.
// Unauthenticated operations live under /v1/auth; everything else
// requires a valid access token. The Redis-backed cache and rate-limit
// middleware degrade to pass-throughs when rdb is nil.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cc := config.LoadCacheConfig()
	cache := middleware.NewRedisCache(cc, rdb)
	// The feed changes whenever someone uploads; keep its cache short.
	feedCache := middleware.NewRedisCacheTTL(cc, rdb, 15*time.Second)

	// Session endpoints: no access token required.
	ag := e.Group("/v1/auth", rl)
	ag.POST("/login", h.Auth.Login)
	ag.POST("/refresh", h.Auth.Refresh)
	ag.POST("/logout", h.Auth.Logout)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1", rl, middleware.JWTAuth(cfg.JWTSecret))
	v1.GET("/me", h.Auth.Me)
	v1.POST("/logout-all", h.Auth.LogoutAll)
	v1.GET("/users/:id/profile", h.Users.Profile)

	// Friend graph.
	v1.POST("/friends", h.Friends.Add)
	v1.GET("/friends", h.Friends.List)
	v1.PUT("/friends/:friend_id", h.Friends.Update)
	v1.DELETE("/friends/:friend_id", h.Friends.Delete)

	// Routines.
	v1.POST("/routines", h.Routines.SaveBatch)
	v1.PUT("/routines/name", h.Routines.AssignName)
	v1.PUT("/routines", h.Routines.UpdateEntries)
	v1.GET("/routines/:name", h.Routines.ListByName)

	// Exercise catalog: read-only, cached.
	v1.GET("/exercises", h.Exercise.List, cache)
	v1.GET("/exercises/search", h.Exercise.Search, cache)

	// Body metrics.
	v1.POST("/records", h.Records.Create)
	v1.GET("/records", h.Records.List)

	// Photos and the social feed.
	v1.POST("/photos", h.Photos.SaveOwn)
	v1.GET("/photos", h.Photos.ListOwn)
	v1.POST("/meal-photos", h.Photos.SaveMeal)
	v1.GET("/meal-photos", h.Photos.ListMeal)
	v1.GET("/social/photos", h.Photos.Feed, feedCache)
	v1.POST("/social/upload", h.Photos.UploadToFeed)
}

package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/nbolat/vidshare/internal/config"     // Internal config loader
	"github.com/nbolat/vidshare/internal/database"   // MySQL connection pool
	"github.com/nbolat/vidshare/internal/handler"    // Action handlers and dispatcher
	"github.com/nbolat/vidshare/internal/middleware" // Rate limiting and response caching
	"github.com/nbolat/vidshare/internal/queue"      // Activity log consumer
	"github.com/nbolat/vidshare/internal/router"     // Route registration
	"github.com/nbolat/vidshare/internal/service"    // Broker publisher
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err) // Abort if the database is unreachable
	}
	defer db.Close()

	e := echo.New() // Create Echo instance

	// Redis is optional: when it is unreachable the dispatcher still works,
	// just without rate limiting or response caching.
	var mws []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		mws = append(mws, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		mws = append(mws, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		log.Printf("redis unavailable: rate limiting and caching disabled")
	}

	api := handler.NewAPI(cfg, db, service.NewBrokerPublisher()) // Build the action table
	router.Register(e, api, mws...)                              // Register application routes

	// Consume upload/comment events into the activity log in the background.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

package main // Entry point package

import (
	"context" // context bounds the schema bootstrap
	"log"     // Logging library
	"time"

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/flyexpress/internal/config"   // Internal config loader
	"github.com/iliyamo/flyexpress/internal/database" // MySQL pool + schema bootstrap
	"github.com/iliyamo/flyexpress/internal/handler"
	"github.com/iliyamo/flyexpress/internal/queue" // background favorite-activity consumer
	"github.com/iliyamo/flyexpress/internal/repository"
	"github.com/iliyamo/flyexpress/internal/router" // Internal router setup
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	cancel()

	// Redis backs the response cache and the rate limiter.  A nil client
	// disables both; the server stays fully functional without it.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	searchRepo := repository.NewSearchRepo(db)
	gridRepo := repository.NewGridRepo(db)
	favRepo := repository.NewFavoriteRepo(db)
	airportRepo := repository.NewAirportRepo(db)
	userRepo := repository.NewUserRepo(db)

	authH := handler.NewAuthHandler(cfg, userRepo)
	searchH := handler.NewSearchHandler(searchRepo, favRepo)
	gridH := handler.NewGridHandler(gridRepo)
	favH := handler.NewFavoritesHandler(favRepo)
	metaH := handler.NewMetaHandler(airportRepo, gridRepo, favRepo)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterSearch(e, searchH, gridH, cfg.JWTSecret, rateCfg, rdb)
	router.RegisterFavorites(e, favH, cfg.JWTSecret)
	router.RegisterMeta(e, metaH, cacheCfg, rdb)

	// Consume favorite-activity events in the background; the loop
	// reconnects on broker failures and never takes the server down.
	go func() {
		if err := queue.StartFavoriteConsumer(); err != nil {
			log.Printf("favorite consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

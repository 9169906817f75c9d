package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/internal/auth"
	"github.com/freeeve/battleship/internal/config"
	"github.com/freeeve/battleship/internal/handler"
	"github.com/freeeve/battleship/internal/learning"
	"github.com/freeeve/battleship/internal/logger"
	"github.com/freeeve/battleship/internal/middleware"
	"github.com/freeeve/battleship/internal/repository"
	filerepo "github.com/freeeve/battleship/internal/repository/file"
	"github.com/freeeve/battleship/internal/repository/postgres"
	redisrepo "github.com/freeeve/battleship/internal/repository/redis"
	"github.com/freeeve/battleship/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Dev: cfg.Dev})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Info().Int("boardSize", cfg.BoardSize).Str("biasStore", cfg.BiasStore).Bool("matchHistory", cfg.MatchHistory).Msg("Config loaded")

	// Database
	var db *sql.DB
	if cfg.NeedsPostgres() {
		var err error
		db, err = postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
	}

	// Bias store
	var biasStore repository.BiasStore
	switch cfg.BiasStore {
	case config.BiasStoreRedis:
		redisClient, err := redisrepo.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		defer redisClient.Close()
		biasStore = redisClient
	case config.BiasStorePostgres:
		biasStore = postgres.NewBiasRepo(db)
	case config.BiasStoreMemory:
		biasStore = learning.NewMemoryStore()
	default:
		biasStore = filerepo.NewBiasStore(cfg.BiasFile)
	}
	biases := learning.NewRegistry(biasStore)

	// Match history
	var matchRepo repository.MatchRepository
	if cfg.MatchHistory {
		matchRepo = postgres.NewMatchRepo(db)
	}

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	playSvc := service.NewPlayService(cfg.BoardSize, biases, matchRepo, wsHub)
	reaper := service.NewSessionReaper(playSvc, cfg.SessionTTL, time.Minute)

	// Handlers
	gameHandler := handler.NewGameHandler(playSvc, jwtMgr)
	wsHandler := handler.NewWSHandler(wsHub, jwtMgr)

	// Router
	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public API routes
	mux.HandleFunc("POST /api/v1/games", gameHandler.CreateGame)
	if matchRepo != nil {
		matchHandler := handler.NewMatchHandler(matchRepo)
		mux.HandleFunc("GET /api/v1/matches", matchHandler.ListMatches)
		mux.HandleFunc("GET /api/v1/matches/{id}", matchHandler.GetMatch)
	}

	// Session-token routes
	api := http.NewServeMux()
	api.HandleFunc("GET /games/{id}", gameHandler.GetGame)
	api.HandleFunc("DELETE /games/{id}", gameHandler.AbortGame)
	api.HandleFunc("POST /games/{id}/placement/preview", gameHandler.PreviewPlacement)
	api.HandleFunc("POST /games/{id}/ships", gameHandler.PlaceShip)
	api.HandleFunc("POST /games/{id}/shots", gameHandler.Fire)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.Recover, middleware.CORS(cfg.CORSOrigin), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start session reaper
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reaper.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Int("sessions", playSvc.Count()).Msg("Server stopped")
}

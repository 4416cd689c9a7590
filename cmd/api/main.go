package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-live-api/internal/broadcast"
	"auction-live-api/internal/cache"
	"auction-live-api/internal/config"
	"auction-live-api/internal/handler"
	"auction-live-api/internal/repository"
	"auction-live-api/internal/router"
	"auction-live-api/internal/service"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()
	setupLogger(cfg)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting auction live API")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()

	// Bid sessions expire after SESSION_TTL of inactivity
	sessions := cache.NewSessionCache(clock, cfg.Session.TTL, cfg.Session.SweepInterval)
	defer sessions.Close()

	store := repository.NewMemoryItemStore(repository.SeedItems(cfg.Auction.Duration))
	auction := service.NewAuctionService(
		store,
		sessions,
		service.NewRandomSource(cfg.Auction.RandomSeed),
		service.RulesFromConfig(cfg.Auction),
	)

	// Live snapshot feed
	hub := broadcast.NewHub(cfg.WebSocket, clock)
	go hub.Run(ctx)
	auction.SetPublisher(hub)

	engine := service.NewTickEngine(auction, clock, cfg.Auction.TickInterval)
	engine.Start(ctx)
	defer engine.Stop()

	// Initialize handlers
	r := router.New(router.Config{
		Handler:          handler.New(cfg.App.Name, cfg.App.Version, engine),
		AuctionHandler:   handler.NewAuctionHandler(auction),
		AdminHandler:     handler.NewAdminHandler(auction, hub),
		WebSocketHandler: handler.NewWebSocketHandler(hub, auction),
		StaticDir:        cfg.Server.StaticDir,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Address()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Stop the simulation first so no snapshot is published mid-shutdown
	engine.Stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	cancel()

	log.Info().Uint64("ticks", auction.Ticks()).Msg("server stopped")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.LogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.PrettyLogs() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

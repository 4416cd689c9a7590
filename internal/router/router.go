package router

import (
	"net/http"

	"auction-live-api/internal/handler"
	"auction-live-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	AuctionHandler   *handler.AuctionHandler
	AdminHandler     *handler.AdminHandler
	WebSocketHandler *handler.WebSocketHandler
	StaticDir        string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// Item images and the display page
	if cfg.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(cfg.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.AuctionHandler != nil {
			r.Get("/items", cfg.AuctionHandler.ListItems)
			r.Route("/items/{id}", func(r chi.Router) {
				r.Get("/", cfg.AuctionHandler.GetItem)
				r.Post("/bids", cfg.AuctionHandler.PlaceBid)
				r.Post("/sessions", cfg.AuctionHandler.OpenSession)
			})
			r.Get("/leaderboard", cfg.AuctionHandler.Leaderboard)
			r.Get("/snapshot", cfg.AuctionHandler.Snapshot)

			r.Route("/sessions/{sid}", func(r chi.Router) {
				r.Get("/", cfg.AuctionHandler.GetSession)
				r.Patch("/", cfg.AuctionHandler.UpdateSession)
				r.Delete("/", cfg.AuctionHandler.CancelSession)
				r.Post("/increment", cfg.AuctionHandler.IncrementSession)
				r.Post("/submit", cfg.AuctionHandler.SubmitSession)
			})
		}

		if cfg.AdminHandler != nil {
			r.Get("/admin/stats", cfg.AdminHandler.GetStats)
		}

		if cfg.WebSocketHandler != nil {
			r.Get("/ws", cfg.WebSocketHandler.Stream)
		}
	})

	return r
}

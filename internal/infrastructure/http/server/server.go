// Package server provides the chi-based HTTP server and route table.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/pantrywise/v1/internal/infrastructure/config"
	"github.com/pantrywise/v1/internal/infrastructure/http/handlers"
	"github.com/pantrywise/v1/internal/infrastructure/http/middleware"
	"github.com/pantrywise/v1/internal/ports/inbound"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mw *middleware.Middleware,
	auth inbound.AuthService,
	pantry inbound.PantryService,
	recipes inbound.RecipeService,
	shopping inbound.ShoppingService,
	suggest inbound.SuggestionService,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger.Named("http-server"),
	}

	authHandler := handlers.NewAuthHandler(auth, logger)
	pantryHandler := handlers.NewPantryHandler(pantry, cfg, logger)
	recipeHandler := handlers.NewRecipeHandler(recipes, logger)
	shoppingHandler := handlers.NewShoppingHandler(shopping, logger)
	suggestHandler := handlers.NewSuggestHandler(suggest, logger)
	healthHandler := handlers.NewHealthHandler(cfg.App.Version)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(mw.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	if cfg.Server.EnableCompression {
		r.Use(chimiddleware.Compress(5))
	}
	r.Use(mw.Instrument)
	r.Use(mw.RateLimit)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			r.Route("/pantry", func(r chi.Router) {
				r.Get("/", pantryHandler.List)
				r.Post("/", pantryHandler.Add)
				r.Get("/expiring", pantryHandler.ExpiringSoon)
				r.Put("/{itemID}", pantryHandler.Update)
				r.Delete("/{itemID}", pantryHandler.Delete)
			})

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", recipeHandler.List)
				r.Post("/", recipeHandler.Create)
				r.Get("/search", recipeHandler.Search)
				r.Get("/top-matches", recipeHandler.TopMatches)
				r.Get("/favourites", recipeHandler.ListFavourites)
				r.Get("/{recipeID}", recipeHandler.Get)
				r.Put("/{recipeID}", recipeHandler.Update)
				r.Delete("/{recipeID}", recipeHandler.Delete)
				r.Post("/{recipeID}/favourite", recipeHandler.ToggleFavourite)
				r.Post("/{recipeID}/shopping-list", shoppingHandler.AddRecipeMissing)
			})

			r.Route("/shopping-list", func(r chi.Router) {
				r.Get("/", shoppingHandler.List)
				r.Post("/", shoppingHandler.Add)
				r.Post("/move-done", shoppingHandler.MoveDoneToPantry)
				r.Post("/{itemID}/toggle", shoppingHandler.ToggleDone)
				r.Post("/{itemID}/move", shoppingHandler.MoveToPantry)
				r.Delete("/{itemID}", shoppingHandler.Delete)
			})

			r.Route("/suggestions", func(r chi.Router) {
				r.Post("/", suggestHandler.Suggest)
				r.Post("/expand", suggestHandler.Expand)
			})
		})
	})

	s.router = r
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	_ = http2.ConfigureServer(s.server, &http2.Server{})

	return s
}

// Router exposes the route table for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving requests
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains connections and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}

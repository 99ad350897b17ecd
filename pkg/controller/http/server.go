package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aghinsa/IFRNet/pkg/domain/interfaces"
	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	checkpointDir string
	sets          []model.CheckpointSet
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithCheckpointDir sets the directory served under /checkpoints/
func WithCheckpointDir(dir string) Option {
	return func(c *config) {
		c.checkpointDir = dir
	}
}

// WithSets sets the checkpoint sets reported by /api/sets
func WithSets(sets []model.CheckpointSet) Option {
	return func(c *config) {
		c.sets = sets
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server exposing fetched checkpoints
func NewServer(
	ctx context.Context,
	reportUC interfaces.ReportUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:          "localhost:8080",
		checkpointDir: "checkpoints",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Checkpoint inventory
	router.Get("/api/sets", handleSets(cfg.sets))
	router.Get("/api/tree", handleTree(reportUC, cfg.checkpointDir))

	// Checkpoint files
	fileServer := http.StripPrefix("/checkpoints/", http.FileServer(http.Dir(cfg.checkpointDir)))
	router.Get("/checkpoints/*", fileServer.ServeHTTP)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}

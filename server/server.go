package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/aidigest/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/run_reader.go -pkg mocks -skip-ensure -fmt goimports . RunReader
//go:generate moq -out mocks/item_counter.go -pkg mocks -skip-ensure -fmt goimports . ItemCounter

// Server represents HTTP server instance
type Server struct {
	Params

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Fetcher starts fetch runs on demand
type Fetcher interface {
	Trigger(ctx context.Context) (domain.FetchRun, error)
	Running() bool
	NextRun() time.Time
}

// RunReader reads fetch run records
type RunReader interface {
	GetRun(ctx context.Context, id string) (domain.FetchRun, error)
	LatestRun(ctx context.Context) (domain.FetchRun, error)
}

// ItemCounter reports stored items per module
type ItemCounter interface {
	CountByModule(ctx context.Context) (map[domain.Module]int, error)
}

// Params configures Server
type Params struct {
	Listen   string
	Timeout  time.Duration
	AdminKey string
	Version  string
	Debug    bool

	Fetcher  Fetcher
	Runs     RunReader
	Items    ItemCounter         // optional, adds module counts to status
	Gatherer prometheus.Gatherer // source of /metrics, default gatherer if nil
}

// New initializes a new server instance
func New(params Params) *Server {
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	if params.Gatherer == nil {
		params.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		Params: params,
		router: routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting server on %s", s.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.Timeout,
		ReadTimeout:       s.Timeout,
		WriteTimeout:      s.Timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("aidigest", "umputun", s.Version))
	s.router.Use(rest.Ping)

	if s.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Handle("GET /metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	s.router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.HandleFunc("GET /status", s.statusHandler)

		api.Mount("/admin").Route(func(admin *routegroup.Bundle) {
			admin.Use(s.adminOnly)
			admin.HandleFunc("POST /fetch/trigger", s.triggerHandler)
			admin.HandleFunc("/fetch/trigger", s.postOnlyHandler)
			admin.HandleFunc("GET /fetch/status/{runID}", s.runStatusHandler)
			admin.HandleFunc("GET /fetch/latest", s.latestRunHandler)
		})
	})
}

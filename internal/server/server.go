package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pitchside/internal/api"
	"pitchside/internal/config"
	"pitchside/internal/logging"
	"pitchside/internal/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	requestTimeout    = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server wires the analysis service to a chi router.
type Server struct {
	cfg     *config.Config
	svc     *api.AnalysisService
	metrics *metrics.Metrics
	logger  *slog.Logger
	router  chi.Router
}

// New builds the router. m may be nil when metrics are disabled.
func New(cfg *config.Config, svc *api.AnalysisService, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		svc:     svc,
		metrics: m,
		logger:  logging.NewComponentLogger(logger, "http"),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	router := chi.NewRouter()
	router.Use(
		requestID,
		middleware.RealIP,
		s.observe,
		s.recoverer,
	)

	router.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(
			bearerAuth(s.cfg.API.Token),
			middleware.Timeout(requestTimeout),
			limitBody(s.cfg.API.MaxBodyBytes),
		)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/highlights", s.handleHighlights)
		r.Get("/profiles", s.handleProfiles)
		r.Get("/status", s.handleStatus)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, errors.New("route not found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})
	return router
}

// Run listens on the configured bind address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.API.Bind)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.API.Bind, err)
	}
	return s.Serve(ctx, listener)
}

// Serve handles connections from listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening",
			logging.String("addr", listener.Addr().String()),
			logging.Bool("auth", s.cfg.API.Token != ""),
			logging.Bool("metrics", s.metrics != nil),
		)
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info("http api stopped")
	return nil
}

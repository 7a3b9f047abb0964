package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strconv"
	"time"

	"crimestats/internal/platform/config"
	"crimestats/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ShutdownGrace bounds a graceful stop triggered by context cancellation
var ShutdownGrace = 10 * time.Second

// Server owns the chi mux and the listening http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads API_PORT and the API_*_TIMEOUT settings from cfg. A bare
// port number such as 8080 listens on all interfaces. opts receive the mux
// before any module mounts.
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	if _, err := strconv.Atoi(addr); err == nil {
		addr = ":" + addr
	}
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.MayDuration("API_WRITE_TIMEOUT", 2*time.Minute),
			IdleTimeout:       cfg.MayDuration("API_IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until it stops
// cancelling ctx drains in flight requests for up to ShutdownGrace
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

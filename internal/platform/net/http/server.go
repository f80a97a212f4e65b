package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"apiwarden/internal/platform/config"
	"apiwarden/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server wraps the stdlib server around a chi mux.
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer builds a server listening on API_PORT (default :4000). opts
// receive the raw mux so callers can mount before the facade is handed out.
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
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
		},
	}
}

// Router returns the mounting facade over the mux.
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr reports the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Run listens and blocks until Shutdown. A graceful close returns nil.
func (s *Server) Run(ctx context.Context) error {
	logger.Named("http").Info().Str("addr", s.addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); err != stdhttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

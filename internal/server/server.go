// ABOUTME: HTTP server wiring for the studio API
// ABOUTME: Builds the route table, applies middleware, and manages lifecycle

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/apexforge/studio/internal/auth"
	"github.com/apexforge/studio/internal/config"
	"github.com/apexforge/studio/internal/mail"
	"github.com/apexforge/studio/internal/store"
)

// Server serves the public and admin API for the studio site.
type Server struct {
	cfg      *config.Config
	store    store.Store
	verifier *auth.JWTVerifier
	creds    auth.Credentials
	notifier mail.Notifier
	logger   *slog.Logger
	metrics  *metrics

	httpServer *http.Server
	tsn        *tailnetListener
}

// New creates a Server from configuration. The JWT secret is checked for
// minimum length here, once, at startup.
func New(cfg *config.Config, st store.Store, notifier mail.Notifier) (*Server, error) {
	verifier, err := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("creating JWT verifier: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		verifier: verifier,
		creds: auth.Credentials{
			Username:     cfg.Auth.AdminUsername,
			PasswordHash: cfg.Auth.AdminPasswordHash,
		},
		notifier: notifier,
		logger:   slog.Default().With("component", "server"),
		metrics:  newMetrics(),
	}
	return s, nil
}

// Routes builds the full route table. Public endpoints bypass the
// authorization gateway entirely; every admin operation passes through it.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	gateway := auth.Middleware(s.cfg.Auth.AdminUsername, s.verifier, s.logger)

	// Public surface
	mux.HandleFunc("GET /api/", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/contact", s.handleSubmitInquiry)

	// Login is the one admin endpoint outside the gateway
	mux.HandleFunc("POST /api/admin/login", s.handleLogin)

	// Protected admin surface
	mux.Handle("POST /api/admin/projects", gateway(http.HandlerFunc(s.handleCreateProject)))
	mux.Handle("PUT /api/admin/projects/{id}", gateway(http.HandlerFunc(s.handleUpdateProject)))
	mux.Handle("DELETE /api/admin/projects/{id}", gateway(http.HandlerFunc(s.handleDeleteProject)))
	mux.Handle("GET /api/admin/inquiries", gateway(http.HandlerFunc(s.handleListInquiries)))
	mux.Handle("DELETE /api/admin/inquiries/{id}", gateway(http.HandlerFunc(s.handleDeleteInquiry)))

	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Path, s.metrics.handler())
	}

	var handler http.Handler = mux
	handler = s.corsMiddleware(handler)
	handler = s.metrics.instrument(handler)
	return handler
}

// Run starts serving and blocks until ctx is cancelled or the listener
// fails. Shutdown is graceful with a bounded drain.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.listen(ctx)
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.httpServer.Shutdown(shutdownCtx)
		s.closeTailnet()
		return err
	case err := <-errCh:
		s.closeTailnet()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// listen opens either a plain TCP listener or a tailnet listener,
// depending on configuration.
func (s *Server) listen(ctx context.Context) (net.Listener, error) {
	if s.cfg.Tailscale.Enabled {
		tsn, ln, err := setupTailnetListener(ctx, s.cfg.Tailscale, s.logger)
		if err != nil {
			return nil, err
		}
		s.tsn = tsn
		return ln, nil
	}
	ln, err := net.Listen("tcp", s.cfg.Server.HTTPAddr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", s.cfg.Server.HTTPAddr, err)
	}
	return ln, nil
}

func (s *Server) closeTailnet() {
	if s.tsn != nil {
		if err := s.tsn.Close(); err != nil {
			s.logger.Warn("tailscale shutdown", "error", err)
		}
		s.tsn = nil
	}
}

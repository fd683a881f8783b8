// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/janmasethu/sakhi/pkg/config"
	"github.com/janmasethu/sakhi/pkg/logger"
)

// Deps bundles the services the HTTP surface fronts.
type Deps struct {
	Chat     ChatService
	Users    UserService
	Profiles OnboardingStore
	Metrics  http.Handler
}

// Server runs the gin engine with graceful shutdown.
type Server struct {
	cfg      *config.Config
	log      logger.Logger
	version  string
	chat     ChatService
	users    UserService
	profiles OnboardingStore
	metrics  http.Handler
	router   *gin.Engine
}

func New(cfg *config.Config, log logger.Logger, version string, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Chat == nil {
		return nil, errors.New("server: chat service is required")
	}
	if deps.Users == nil {
		return nil, errors.New("server: user service is required")
	}
	if deps.Profiles == nil {
		return nil, errors.New("server: onboarding store is required")
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = http.NotFoundHandler()
	}
	s := &Server{
		cfg:      cfg,
		log:      log,
		version:  version,
		chat:     deps.Chat,
		users:    deps.Users,
		profiles: deps.Profiles,
		metrics:  metrics,
	}
	s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(s.log))
	r.Use(CORSMiddleware(s.cfg.Server.CORSOrigins))
	registerRoutes(r, s)
	s.router = r
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then drains within the configured
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.log.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

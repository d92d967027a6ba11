package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sandevgo/jarvis/internal/config"
	"github.com/sandevgo/jarvis/internal/orchestrator"
	"github.com/sandevgo/jarvis/pkg/log"
)

// Server exposes the assistant over a small JSON API.
type Server struct {
	cfg  *config.WebConfig
	echo *echo.Echo
}

func NewServer(orch *orchestrator.Orchestrator, cfg *config.WebConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h := &handler{orch: orch}
	api := e.Group("/api")
	api.POST("/chat", h.chat)
	api.GET("/history", h.history)
	api.GET("/stats", h.stats)
	api.POST("/clear", h.clear)

	return &Server{cfg: cfg, echo: e}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("web interface listening")

	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

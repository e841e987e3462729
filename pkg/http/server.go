package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/compassx/pkg/engine"
	http_router "github.com/lintang-b-s/compassx/pkg/http/router"
	"github.com/lintang-b-s/compassx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/compassx/pkg/http/server"
	"go.uber.org/zap"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use serves the compass API with cfg until ctx is cancelled.
func (s *Server) Use(
	ctx context.Context,
	cfg engine.ServerConfig,
	compassService controllers.CompassService,
) error {
	config := http_server.Config{
		Port:    cfg.Port,
		Timeout: cfg.Timeout,
	}

	api := http_router.NewAPI(s.Log, cfg.RateLimit, cfg.RateBurst)
	return api.Run(ctx, config, compassService)
}

// GracefulShutdown blocks until SIGINT or SIGTERM arrives and returns it.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}

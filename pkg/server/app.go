package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MemeFlow/internal/usecase"
	"MemeFlow/pkg/config"
	xhttp "MemeFlow/pkg/http"
	applogger "MemeFlow/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	session    *usecase.Session
	httpServer *xhttp.Server
}

// New creates a new App instance over its wired dependencies.
func New(cfg *config.Config, l *applogger.Logger, session *usecase.Session, httpServer *xhttp.Server) *App {
	return &App{
		cfg:        cfg,
		logger:     l,
		session:    session,
		httpServer: httpServer,
	}
}

// Run starts the session and the HTTP server, then blocks until
// interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.session.Start(ctx)
	a.logger.Info("session started",
		applogger.String("upstream", a.cfg.Upstream.BaseURL),
		applogger.String("stream", a.cfg.Upstream.WebSocketURL))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		a.session.Stop()
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown stops the HTTP surface first so no request observes a
// half-stopped session.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.session.Stop()

	a.logger.Info("shutdown complete")
	return nil
}

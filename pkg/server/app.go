package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "ChurnScope/internal/domain/repository"
	"ChurnScope/pkg/config"
	xhttp "ChurnScope/pkg/http"
	applogger "ChurnScope/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	httpHandler xhttp.Handler
	source      domrepo.ArtifactSource
	log         *applogger.Logger
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, handler xhttp.Handler, source domrepo.ArtifactSource, l *applogger.Logger) *App {
	return &App{
		cfg:         cfg,
		httpHandler: handler,
		source:      source,
		log:         l,
	}
}

// Server builds the HTTP server on first use.
func (a *App) Server() *xhttp.Server {
	if a.httpServer == nil {
		metricsPath := ""
		if a.cfg.Metrics.Enabled {
			metricsPath = a.cfg.Metrics.Path
		}
		a.httpServer = xhttp.NewServer(a.httpHandler,
			xhttp.WithHost(a.cfg.Server.Host),
			xhttp.WithPort(a.cfg.Server.Port),
			xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
			xhttp.WithSlowRequest(a.cfg.Server.SlowRequest),
			xhttp.WithMetricsPath(metricsPath),
			xhttp.WithLogger(a.log),
		)
	}
	return a.httpServer
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done or the listener fails.
func (a *App) RunContext(ctx context.Context) error {
	errCh := a.Server().Start()

	var serveErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			serveErr = err
		}
	}

	if err := a.shutdown(); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down")

	// Shutdown HTTP server
	err := a.httpServer.Stop(context.Background())
	if err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// Close the artifact source client
	if a.source != nil {
		if cerr := a.source.Close(); cerr != nil {
			a.log.Warn("artifact source close error", applogger.Error(cerr))
		}
	}

	a.log.Info("shutdown complete")
	return err
}

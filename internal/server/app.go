// Package server initializes and runs the fallback API server: it opens the
// preference database, wires the local store into the HTTP handlers, and
// handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"eventmanager/internal/localstore"
	"eventmanager/internal/logging"
	"eventmanager/internal/prefs"
	"eventmanager/internal/server/config"
	"eventmanager/internal/server/handlers"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	prefs  prefs.Store
	store  *localstore.Store
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	p, err := prefs.OpenSQLite(ctx, c.PrefsDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}

	return &App{
		config: c,
		logger: logger,
		prefs:  p,
		store:  localstore.New(p),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := handlers.NewHandler(app.store, app.logger,
		[]byte(app.config.SecretKey), app.config.AccessTokenValidityDuration)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: h.Routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "failed to shut down server", "error", err)
		}
	}()

	app.logger.Info(ctx, "starting HTTP server", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "server stopped", "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.prefs.Close(); err != nil {
		app.logger.Error(ctx, "failed to close preference store", "error", err)
	}
}

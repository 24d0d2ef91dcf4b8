package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/route"
	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/bootstrap"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/auth"
	"github.com/VS237/momshop/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// App holds the server and the connections it owns
type App struct {
	cfg       *config.Config
	logger    logger.Logger
	router    *gin.Engine
	store     store.Store
	carts     bootstrap.CartStore
	publisher messaging.Publisher
}

// NewApp opens every connection and builds the router
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	gin.SetMode(cfg.HTTP.Mode)

	jwtService, err := auth.NewJWTService(cfg.Auth.SecretKey, cfg.Auth.Expiration)
	if err != nil {
		return nil, err
	}

	st, err := bootstrap.OpenStore(ctx, *cfg, cfg.Database.AutoMigrate, log)
	if err != nil {
		return nil, err
	}

	carts, err := bootstrap.OpenCartStore(ctx, cfg.Redis, log)
	if err != nil {
		st.Close()
		return nil, err
	}

	publisher := bootstrap.OpenPublisher(cfg.AMQP, log)
	services := bootstrap.NewServices(*cfg, st, carts, publisher, jwtService, log)

	return &App{
		cfg:       cfg,
		logger:    log,
		store:     st,
		carts:     carts,
		publisher: publisher,
		router: route.NewRouter(route.Dependencies{
			Services:    services,
			JWT:         jwtService,
			Health:      st,
			Version:     cfg.HTTP.Version,
			CORSOrigins: cfg.HTTP.CORSOrigins,
			Logger:      log,
		}),
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}

// Close releases the connections
func (a *App) Close() {
	a.publisher.Close()
	if err := a.carts.Close(); err != nil {
		a.logger.Warn("error closing cart store", "error", err)
	}
	a.store.Close()
}

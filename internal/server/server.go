// Package server assembles the echo server from the configuration and runs it
// until its context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anonto42/linkfeed/backend/internal/middleware"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/anonto42/linkfeed/backend/internal/router"
	"github.com/anonto42/linkfeed/backend/pkg/config"
	"github.com/anonto42/linkfeed/backend/pkg/firebase"
	"github.com/anonto42/linkfeed/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run connects the databases, builds the routes and serves until ctx is done
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, log)

	authMw, err := authMiddleware(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	var events repositories.LinkEventRepository = repositories.NopLinkEventRepository{}
	if db.Mongo != nil {
		events = repositories.NewMongoLinkEventRepository(db.Mongo.Database(cfg.Mongo.Database))
	}

	if err := router.SetupRoutes(e, router.Dependencies{
		DB:          db.Gorm,
		Events:      events,
		Auth:        authMw,
		AutoMigrate: cfg.AutoMigrate,
		Log:         log,
	}); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errc <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func authMiddleware(ctx context.Context, cfg *config.Config, db *config.DB, log *zap.Logger) (echo.MiddlewareFunc, error) {
	if cfg.Auth.Provider != config.AuthFirebase {
		return middleware.JWTAuthMiddleware(cfg.Auth.JWTSecret, log), nil
	}
	app, err := firebase.InitFirebase(ctx, cfg.Auth.FirebaseCredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}
	log.Info("firebase auth enabled")
	return middleware.FirebaseAuthMiddleware(app.AuthClient, repositories.NewGormUserRepository(db.Gorm), log), nil
}

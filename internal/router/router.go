package router

import (
	"fmt"

	"github.com/anonto42/linkfeed/backend/internal/graph"
	"github.com/anonto42/linkfeed/backend/internal/handlers"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the shared clients the routes are built from
type Dependencies struct {
	DB          *gorm.DB
	Events      repositories.LinkEventRepository
	Auth        echo.MiddlewareFunc // decodes the bearer token of /graphql requests
	AutoMigrate bool
	Log         *zap.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	if deps.AutoMigrate {
		if err := repositories.AutoMigrate(deps.DB); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		deps.Log.Info("auto-migrations completed")
	}

	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "POST your queries to /graphql"})
	})

	schema, err := graph.NewResolver(deps.Events, e.Validator, deps.Log).Schema()
	if err != nil {
		return fmt.Errorf("build graphql schema: %w", err)
	}

	var mw []echo.MiddlewareFunc
	if deps.Auth != nil {
		mw = append(mw, deps.Auth)
	}
	gqlHandler := handlers.NewGraphQLHandler(schema, graph.NewContextFactory(deps.DB), deps.Log)
	gqlHandler.RegisterGraphQLRoutes(e.Group(""), mw...)
	deps.Log.Info("graphql routes configured", zap.String("path", "/graphql"))

	return nil
}

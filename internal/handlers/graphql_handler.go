package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/anonto42/linkfeed/backend/internal/graph"
	"github.com/anonto42/linkfeed/backend/internal/middleware"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GraphQLHandler serves GraphQL requests over HTTP
type GraphQLHandler struct {
	schema   graphql.Schema
	contexts *graph.ContextFactory
	log      *zap.Logger
}

// NewGraphQLHandler creates a new GraphQLHandler
func NewGraphQLHandler(schema graphql.Schema, contexts *graph.ContextFactory, log *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, contexts: contexts, log: log}
}

// RegisterGraphQLRoutes registers the GraphQL endpoint on g
func (h *GraphQLHandler) RegisterGraphQLRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/graphql", h.Serve, m...)
	g.GET("/graphql", h.Serve, m...)
}

// Serve executes one GraphQL request. The response is always 200 once the
// request is well formed; execution errors are reported in the "errors" field.
// GET only runs queries, so a plain link can never change data.
func (h *GraphQLHandler) Serve(c echo.Context) error {
	var req graph.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if vars := c.QueryParam("variables"); vars != "" && req.Variables == nil {
		if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid variables")
		}
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing query")
	}
	if c.Request().Method == http.MethodGet {
		if op := req.Operation(); op != "" && op != ast.OperationTypeQuery {
			c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
			return echo.NewHTTPError(http.StatusMethodNotAllowed, "Only queries can be sent with GET, use POST for "+op+"s")
		}
	}

	ctx := graph.WithContext(c.Request().Context(), h.contexts.New(middleware.UserID(c)))
	res := graph.Do(ctx, h.schema, req)
	if res.HasErrors() {
		h.log.Debug("graphql errors",
			zap.String("operation", req.OperationName),
			zap.Int("count", len(res.Errors)),
			zap.String("first", res.Errors[0].Message))
	}
	return c.JSON(http.StatusOK, res)
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/linkfeed/backend/internal/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const userIDKey = "userID"

// Authenticate decodes the bearer token of a request, if there is one, and
// stores the user id for UserID. Requests without an Authorization header
// pass through anonymously; a malformed or invalid token is rejected with 401.
// Any other decoder failure, a database outage say, is a server error.
func Authenticate(decoder auth.TokenDecoder, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			token, err := auth.BearerToken(authHeader)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			userID, err := decoder.Decode(c.Request().Context(), token)
			if errors.Is(err, auth.ErrInvalidToken) {
				log.Debug("rejected bearer token", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if err != nil {
				log.Error("could not decode bearer token", zap.Error(err))
				return fmt.Errorf("decode token: %w", err)
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// JWTAuthMiddleware authenticates requests with tokens signed by auth.IssueToken
func JWTAuthMiddleware(secret string, log *zap.Logger) echo.MiddlewareFunc {
	return Authenticate(auth.JWTDecoder{Secret: secret}, log)
}

// UserID returns the authenticated user of the request, or nil if it is anonymous
func UserID(c echo.Context) *uint {
	if id, ok := c.Get(userIDKey).(uint); ok {
		return &id
	}
	return nil
}

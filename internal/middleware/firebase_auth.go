package middleware

import (
	"firebase.google.com/go/v4/auth"
	lfauth "github.com/anonto42/linkfeed/backend/internal/auth"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FirebaseAuthMiddleware authenticates requests with Firebase ID tokens. The
// token's Firebase UID must belong to a registered user.
func FirebaseAuthMiddleware(authClient *auth.Client, users repositories.UserRepository, log *zap.Logger) echo.MiddlewareFunc {
	return Authenticate(lfauth.FirebaseDecoder{Verifier: authClient, Users: users}, log)
}

// Package auth decodes bearer tokens into the id of the user making a request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/linkfeed/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

const Issuer = "linkfeed"

var (
	ErrMalformedHeader = errors.New("Authorization header must be in Bearer format")
	ErrInvalidToken    = errors.New("invalid token")
)

// TokenDecoder turns a bearer token into a user id
type TokenDecoder interface {
	Decode(ctx context.Context, token string) (uint, error)
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMalformedHeader
	}
	return parts[1], nil
}

// IssueToken signs an HS256 token for userID that expires after ttl
func IssueToken(secret string, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// JWTDecoder verifies tokens signed by IssueToken
type JWTDecoder struct {
	Secret string
}

func (d JWTDecoder) Decode(_ context.Context, tokenString string) (uint, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(d.Secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	if !claims.VerifyIssuer(Issuer, true) {
		return 0, fmt.Errorf("%w: issuer %q", ErrInvalidToken, claims.Issuer)
	}
	return claims.UserID, nil
}

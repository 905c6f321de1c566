package auth

import (
	"context"
	"errors"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// IDTokenVerifier is the part of the Firebase auth client used here
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseDecoder verifies Firebase ID tokens and maps the Firebase UID to a local user
type FirebaseDecoder struct {
	Verifier IDTokenVerifier
	Users    repositories.UserRepository
}

func (d FirebaseDecoder) Decode(ctx context.Context, idToken string) (uint, error) {
	token, err := d.Verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	user, err := d.Users.FindByFirebaseUID(ctx, token.UID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: no user for firebase uid %s", ErrInvalidToken, token.UID)
	}
	if err != nil {
		return 0, fmt.Errorf("find user for firebase uid %s: %w", token.UID, err)
	}
	return user.ID, nil
}

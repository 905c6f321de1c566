package graph

import (
	"context"
	"errors"

	"github.com/anonto42/linkfeed/backend/internal/models"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/anonto42/linkfeed/backend/validators"
	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned when an anonymous request tries to post a link
var ErrNotAuthenticated = errors.New("Cannot post without logging in.")

// Validator checks a request struct; validators.CustomValidator satisfies it
type Validator interface {
	Validate(i interface{}) error
}

// Resolver holds the dependencies shared by all requests. Per request state,
// the database and the caller, comes from the Context in the resolve params.
type Resolver struct {
	events   repositories.LinkEventRepository
	validate Validator
	log      *zap.Logger
}

// NewResolver creates a Resolver. A nil events repository disables the audit trail.
func NewResolver(events repositories.LinkEventRepository, validate Validator, log *zap.Logger) *Resolver {
	if events == nil {
		events = repositories.NopLinkEventRepository{}
	}
	if validate == nil {
		validate = validators.NewValidator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{events: events, validate: validate, log: log}
}

// record adds an entry to the audit trail. It never fails the mutation.
func (r *Resolver) record(ctx context.Context, linkID uint, userID *uint, action string) {
	err := r.events.Record(ctx, &models.LinkEvent{LinkID: linkID, UserID: userID, Action: action})
	if err != nil {
		r.log.Warn("could not record link event",
			zap.Uint("link_id", linkID),
			zap.String("action", action),
			zap.Error(err))
	}
}

package graph

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Context is what every resolver gets for the request it serves
type Context struct {
	DB     *gorm.DB
	UserID *uint // nil for anonymous requests
}

type contextKey struct{}

var errNoContext = errors.New("graph: request context missing")

// WithContext attaches gc to ctx
func WithContext(ctx context.Context, gc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, gc)
}

// FromContext returns the Context attached by WithContext
func FromContext(ctx context.Context) (*Context, error) {
	if ctx == nil {
		return nil, errNoContext
	}
	gc, ok := ctx.Value(contextKey{}).(*Context)
	if !ok || gc == nil {
		return nil, errNoContext
	}
	return gc, nil
}

// ContextFactory builds the Context of each request from the shared database client
type ContextFactory struct {
	db *gorm.DB
}

func NewContextFactory(db *gorm.DB) *ContextFactory {
	return &ContextFactory{db: db}
}

// New returns a Context for a request made by userID, or an anonymous one if userID is nil
func (f *ContextFactory) New(userID *uint) *Context {
	return &Context{DB: f.db, UserID: userID}
}

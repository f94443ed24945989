// Package identity answers "who is calling" for the current request.
package identity

import (
	"context"
	"strings"
)

type contextKey struct{}

// Resolver returns the external user id for the current execution context.
// ok is false when the caller is unauthenticated.
type Resolver interface {
	UserID(ctx context.Context) (id string, ok bool)
}

// WithUserID attaches an authenticated user id to ctx. Blank ids are ignored.
func WithUserID(ctx context.Context, userID string) context.Context {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFrom returns the user id stored by WithUserID.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// ContextResolver reads the id placed on the context by the CLI or the
// HTTP auth middleware.
type ContextResolver struct{}

func (ContextResolver) UserID(ctx context.Context) (string, bool) {
	return UserIDFrom(ctx)
}

// StaticResolver always resolves to the same user. An empty ID resolves to
// no one.
type StaticResolver struct {
	ID string
}

func (s StaticResolver) UserID(context.Context) (string, bool) {
	return s.ID, s.ID != ""
}

package auth

import (
	"context"

	apierrors "github.com/playhub/community-api/internal/errors"
)

// Caller is the authenticated identity attached to a single request.
type Caller struct {
	UserID uint64
	Email  string
}

type callerKey struct{}

// WithCaller returns a copy of ctx carrying caller
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller stored in ctx, or nil when the request is anonymous
func CallerFromContext(ctx context.Context) *Caller {
	caller, _ := ctx.Value(callerKey{}).(*Caller)
	return caller
}

// RequireCaller is the authorization guard shared by every protected
// operation. Identity always comes from the caller, never from arguments.
func RequireCaller(caller *Caller, message string) (*Caller, error) {
	if caller == nil || caller.UserID == 0 {
		return nil, apierrors.Unauthenticated(message)
	}
	return caller, nil
}

package api

import (
	"context"
)

type keyType string

const authContextKey keyType = "authContext"

// authContext is the per-request authentication state, built once from the
// verified session cookie and passed to handlers through the request context.
type authContext struct {
	UserID   uint
	Username string
	IsAdmin  bool
}

// ctxWithAuth adds the authenticated identity to the context
func ctxWithAuth(ctx context.Context, auth authContext) context.Context {
	return context.WithValue(ctx, authContextKey, auth)
}

// ctxAuth retrieves the authenticated identity from the context
func ctxAuth(ctx context.Context) (authContext, bool) {
	auth, ok := ctx.Value(authContextKey).(authContext)
	return auth, ok
}

package http

import (
	"context"
	"errors"
)

type contextKey string

const userIDKey contextKey = "user_id"

var errNoUser = errors.New("no authenticated user in request context")

// WithUserID returns a context carrying the authenticated caller's user ID.
func WithUserID(ctx context.Context, userID int32) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated caller's user ID. The auth
// middleware guarantees it is present on protected routes.
func UserIDFromContext(ctx context.Context) (int32, error) {
	userID, ok := ctx.Value(userIDKey).(int32)
	if !ok {
		return 0, errNoUser
	}
	return userID, nil
}

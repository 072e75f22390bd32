package internal

import (
	"context"
	"time"
)

type ctxKey string

const (
	ContextUserKey    ctxKey = "userID"
	ContextSessionKey ctxKey = "sessionID"
)

// DefaultSessionID is used when a request carries no session claim, so
// unauthenticated tooling (CLI, tests) still gets a consistent history.
const DefaultSessionID = "default"

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ContextUserKey).(string); ok {
		return userID
	}
	return ""
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return DefaultSessionID
	}
	if sessionID, ok := ctx.Value(ContextSessionKey).(string); ok && sessionID != "" {
		return sessionID
	}
	return DefaultSessionID
}

func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ContextSessionKey, sessionID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}

package session

import (
	"context"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"

	// GinKey is the gin context key holding the session id
	GinKey = "session_id"
)

// WithSessionID stores the session id in ctx
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// FromContext returns the session id stored in ctx, or ""
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// GetSessionID returns the session id of a gin context
func GetSessionID(c interface{}) string {
	if gc, ok := c.(interface {
		Get(string) (interface{}, bool)
	}); ok {
		if val, exists := gc.Get(GinKey); exists {
			if id, ok := val.(string); ok {
				return id
			}
		}
	}
	return ""
}

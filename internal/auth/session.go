package auth

import "context"

type contextKey string

const userIDKey contextKey = "user_id"

// SessionProvider reports the user of the current session, if any.
type SessionProvider interface {
	Session(ctx context.Context) (userID string, ok bool)
}

// WithUserID returns a context carrying an authenticated user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID extracts the authenticated user from ctx.
// Returns empty string if not found.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// ContextSessions reads the session placed in the context by WithUserID,
// either by the HTTP middleware or by the CLI after validating --token.
type ContextSessions struct{}

func (ContextSessions) Session(ctx context.Context) (string, bool) {
	id := UserID(ctx)
	return id, id != ""
}

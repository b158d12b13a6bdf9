package utils

import "context"

type ctxKey string

const (
	// UserIDCtxKey is the context key under which the authentication
	// middleware stores the authenticated user's ID.
	UserIDCtxKey ctxKey = "userID"

	// EmailCtxKey is the context key under which the authentication
	// middleware stores the authenticated user's email.
	EmailCtxKey ctxKey = "email"
)

// GetUserIDFromContext returns the authenticated user's ID previously stored
// in ctx by the authentication middleware, and a flag reporting whether the
// value was present.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetEmailFromContext returns the authenticated user's email previously
// stored in ctx by the authentication middleware, and a flag reporting
// whether the value was present.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailCtxKey).(string)
	return email, ok
}

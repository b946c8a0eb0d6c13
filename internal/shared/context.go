package shared

import "context"

// Unexported key type keeps other packages from colliding with or
// overwriting the session value.
type sessionContextKey struct{}

// ContextWithSession attaches the authenticated session to ctx.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the session attached by the auth middleware,
// or nil for unauthenticated requests.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

package middleware

import (
	"context"
	"log/slog"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// contextKey is the key type used to store values in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	authCtxKey   = contextKey("authContext")
)

// WithLogger returns a context carrying the given request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from the context.
// It returns the default logger if none is found (though this shouldn't
// happen if the middleware is applied correctly).
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// WithAuthContext returns a context carrying the authenticated caller.
func WithAuthContext(ctx context.Context, auth domain.AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey, auth)
}

// GetAuthFromCtx retrieves the authenticated caller from the context.
// It returns the auth context and a boolean indicating if it was found.
func GetAuthFromCtx(ctx context.Context) (domain.AuthContext, bool) {
	auth, ok := ctx.Value(authCtxKey).(domain.AuthContext)
	return auth, ok
}

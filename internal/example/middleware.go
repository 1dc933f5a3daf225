// Package example implements example middleware in an outside package.
package example

import (
	"context"

	"github.com/advdv/rawhttp"
	"go.uber.org/zap"
)

// ctxKey type scopes middleware values.
type ctxKey string

// Middleware provides an example for middleware that adds a request scoped logger to the context.
func Middleware(logs *zap.Logger) rawhttp.Middleware {
	return func(n rawhttp.Handler) rawhttp.Handler {
		return rawhttp.HandlerFunc(func(ctx context.Context, w *rawhttp.Body) error {
			logs := logs.With(zap.String("remote", rawhttp.RemoteAddr(ctx)))
			if route, ok := rawhttp.RouteFromContext(ctx); ok {
				logs = logs.With(zap.Stringer("method", route.Method), zap.String("path", route.Path))
			}

			return n.ServeBody(context.WithValue(ctx, ctxKey("zap"), logs), w)
		})
	}
}

// Log returns the logger stored by [Middleware], or a no-op logger.
func Log(ctx context.Context) *zap.Logger {
	if v, ok := ctx.Value(ctxKey("zap")).(*zap.Logger); ok {
		return v
	}

	return zap.NewNop()
}

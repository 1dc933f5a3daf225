package rawhttp

import (
	"context"
)

// Handler produces the body of a response for a matched route. It writes the payload
// into w, or leaves w empty to signal no content. Returning an error discards whatever
// was written and makes the server answer with the error's code (see [CodeOf]), or 500
// when the error carries none.
type Handler interface {
	ServeBody(ctx context.Context, w *Body) error
}

// HandlerFunc allow casting a function to implement [Handler].
type HandlerFunc func(context.Context, *Body) error

// ServeBody implements the [Handler] interface.
func (f HandlerFunc) ServeBody(ctx context.Context, w *Body) error {
	return f(ctx, w)
}

// ctxKey scopes values this package stores in a context.
type ctxKey int

const (
	ctxKeyRoute ctxKey = iota
	ctxKeyRemoteAddr
)

// withRoute returns a context that carries the route being served.
func withRoute(ctx context.Context, route Route) context.Context {
	return context.WithValue(ctx, ctxKeyRoute, route)
}

// RouteFromContext returns the route being served and whether one was set.
func RouteFromContext(ctx context.Context) (Route, bool) {
	route, ok := ctx.Value(ctxKeyRoute).(Route)
	return route, ok
}

// withRemoteAddr returns a context that carries the address of the connected client.
func withRemoteAddr(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, ctxKeyRemoteAddr, addr)
}

// RemoteAddr returns the address of the client whose request is being served, or an
// empty string outside of a connection.
func RemoteAddr(ctx context.Context) string {
	addr, _ := ctx.Value(ctxKeyRemoteAddr).(string)
	return addr
}

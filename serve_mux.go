package rawhttp

import (
	"context"

	"github.com/cockroachdb/errors"
)

// DefaultRouterCapacity is the router capacity used by [NewServeMux].
const DefaultRouterCapacity = 64

// ServeMux dispatches parsed routes to handlers through a fixed-capacity [Router], with
// middleware and named routes on top.
type ServeMux struct {
	router      *Router
	reverser    *Reverser
	notFound    Handler
	middlewares struct {
		captured bool
		buffered []Middleware
	}
}

// NewServeMux creates a new ServeMux with default settings.
func NewServeMux() *ServeMux {
	return NewServeMuxWith(NewRouter(DefaultRouterCapacity), NewReverser())
}

// NewServeMuxWith creates a ServeMux with custom settings.
func NewServeMuxWith(router *Router, reverser *Reverser) *ServeMux {
	return &ServeMux{
		router:   router,
		reverser: reverser,
		notFound: HandlerFunc(noContent),
	}
}

// Router returns the table the mux dispatches through.
func (m *ServeMux) Router() *Router { return m.router }

// Reverse returns the path of the named route.
func (m *ServeMux) Reverse(name string) (string, error) {
	return m.reverser.Reverse(name)
}

// Use allows providing of middleware.
func (m *ServeMux) Use(mw ...Middleware) {
	m.ensureNoUseAfterHandle()
	m.middlewares.buffered = append(m.middlewares.buffered, mw...)
}

// HandleFunc handles the route using a function.
func (m *ServeMux) HandleFunc(method Method, path string, handler HandlerFunc, name ...string) {
	m.Handle(method, path, handler, name...)
}

// Handle attaches handler for the given method and path. An optional name makes the
// route reversible with [ServeMux.Reverse].
func (m *ServeMux) Handle(method Method, path string, handler Handler, name ...string) {
	m.middlewares.captured = true

	route := Route{Method: method, Path: path}
	if len(name) > 0 {
		route = m.reverser.Named(name[0], route)
	}

	size := m.router.Size()
	m.router.Attach(route, Wrap(handler, m.middlewares.buffered...))

	// a full table drops the route, so its name must not reverse to a dead path
	if len(name) > 0 && m.router.Size() == size {
		m.reverser.drop(name[0])
	}
}

// NotFound sets the handler that produces the body of 404 responses. Middleware
// registered before this call is applied to it.
func (m *ServeMux) NotFound(handler Handler) {
	m.middlewares.captured = true
	m.notFound = Wrap(handler, m.middlewares.buffered...)
}

// Dispatch serves route: the attached handler fills body and the result is [CodeOK], or
// the not-found handler fills it and the result is [CodeNotFound]. When the handler
// fails the body is reset and the returned code is taken from the error, defaulting to
// [CodeInternalServerError].
func (m *ServeMux) Dispatch(ctx context.Context, route Route, body *Body) (Code, error) {
	ctx = withRoute(ctx, route)

	code, handler := CodeOK, Handler(nil)
	if h, match := m.router.Lookup(route); match == MatchOK && h != nil {
		handler = h
	} else {
		code, handler = CodeNotFound, m.notFound
	}

	if err := handler.ServeBody(ctx, body); err != nil {
		body.Reset()

		if c := CodeOf(err); c != CodeUnknown {
			return c, errors.Wrapf(err, "serve %s", route)
		}

		return CodeInternalServerError, errors.Wrapf(err, "serve %s", route)
	}

	return code, nil
}

func (m *ServeMux) ensureNoUseAfterHandle() {
	if m.middlewares.captured {
		panic("rawhttp: cannot call Use() after calling Handle")
	}
}

func noContent(context.Context, *Body) error { return nil }

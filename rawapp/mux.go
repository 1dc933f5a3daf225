package rawapp

import (
	"github.com/advdv/rawhttp"
	"go.opentelemetry.io/otel/trace"
)

// Mux is an alias for rawhttp.ServeMux.
type Mux = rawhttp.ServeMux

// NewMux creates a Mux whose router has the capacity from the environment. Every
// handler registered on it is traced.
func NewMux(env Environment, tp trace.TracerProvider) *Mux {
	mux := rawhttp.NewServeMuxWith(
		rawhttp.NewRouter(env.routerCapacity()),
		rawhttp.NewReverser(),
	)
	mux.Use(withTracing(tp))

	return mux
}

package rawapp

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// App wraps an fx.App for lifecycle management.
type App struct {
	app *fx.App
}

// AppConfig holds configuration for the app.
type AppConfig struct {
	ServerConfig
	FxOptions []fx.Option
}

// Option configures the App.
type Option func(*AppConfig)

// WithFx adds fx options for dependency injection.
func WithFx(fxOpts ...fx.Option) Option {
	return func(c *AppConfig) {
		c.FxOptions = append(c.FxOptions, fxOpts...)
	}
}

// WithPort makes the server listen on port instead of RAWHTTP_PORT.
func WithPort(port int) Option {
	return func(c *AppConfig) {
		c.Port = port
	}
}

// FxOptions returns the fx options that make up the app's dependency graph. The routing
// function is invoked with any provided types; it should at least accept *Mux.
func FxOptions[E Environment](routing any, opts ...Option) []fx.Option {
	var cfg AppConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	baseOpts := make([]fx.Option, 0, 10+len(cfg.FxOptions))
	baseOpts = append(baseOpts, []fx.Option{
		fx.NopLogger,
		fx.Provide(ParseEnv[E]()),
		fx.Provide(func(e E) Environment { return e }),
		fx.Provide(func(e E) (*zap.Logger, error) { return NewLogger(e) }),
		fx.Provide(NewTracerProvider),
		fx.Provide(func(env Environment, tp trace.TracerProvider) (PageSource, error) {
			return NewPageSource(context.Background(), env, tp)
		}),
		fx.Provide(NewMux),
		fx.Supply(cfg.ServerConfig),
		fx.Provide(NewServer),
		fx.Invoke(routing),
		fx.Invoke(startServerHook),
	}...)

	return append(baseOpts, cfg.FxOptions...)
}

// NewApp creates a batteries-included app with dependency injection.
//
// The routing function can request any types that are provided via fx options.
// At minimum, it should accept *Mux for routing. Routes must be registered by the
// routing function: the router is frozen once the server starts.
//
// Example:
//
//	rawapp.NewApp[rawapp.BaseEnvironment](func(m *rawapp.Mux, src rawapp.PageSource, logs *zap.Logger) {
//	    rawapp.RegisterPages(m, src, logs)
//	}).Run()
func NewApp[E Environment](routing any, opts ...Option) *App {
	return &App{
		app: fx.New(FxOptions[E](routing, opts...)...),
	}
}

// Err returns any error encountered while building the dependency graph.
func (a *App) Err() error {
	return a.app.Err()
}

// Run starts the application and blocks until interrupted. SIGINT and SIGTERM stop the
// server and release the router.
func (a *App) Run() {
	a.app.Run()
}

// Start starts the application with the given context.
func (a *App) Start(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), a.app.StopTimeout())
	defer cancel()

	return a.app.Stop(stopCtx)
}

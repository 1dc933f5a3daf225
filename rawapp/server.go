package rawapp

import (
	"context"
	"fmt"

	"github.com/advdv/rawhttp"
	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServerConfig holds optional configuration for the server.
type ServerConfig struct {
	// Port overrides RAWHTTP_PORT when non-zero.
	Port int
}

// ServerParams holds the dependencies for creating a server.
type ServerParams struct {
	fx.In

	Env    Environment
	Mux    *Mux
	Logger *zap.Logger
}

// NewServer creates a server dispatching through the mux, configured from the environment.
func NewServer(params ServerParams) (*rawhttp.Server, error) {
	warn, err := ParseStatusCodes(params.Env.warnStatusCodes())
	if err != nil {
		return nil, err
	}

	return rawhttp.NewServer(params.Mux, rawhttp.ServerConfig{
		ReadBufferSize: params.Env.readBufferSize(),
		BodyLimit:      params.Env.bodyLimit(),
		ReadTimeout:    params.Env.readTimeout(),
		WriteTimeout:   params.Env.writeTimeout(),
		Logger:         newZapRawHTTPLogger(params.Logger, warn),
	}), nil
}

// listenAddr returns the address to listen on, preferring the configured port.
func listenAddr(env Environment, cfg ServerConfig) string {
	port := env.port()
	if cfg.Port != 0 {
		port = cfg.Port
	}

	return fmt.Sprintf(":%d", port)
}

// startServerHook registers lifecycle hooks for the server. Stopping closes the
// listener, waits for the serve loop to exit and destroys the router.
func startServerHook(
	lc fx.Lifecycle, env Environment, cfg ServerConfig, server *rawhttp.Server, mux *Mux, logger *zap.Logger,
) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := rawhttp.Listen(ctx, listenAddr(env, cfg))
			if err != nil {
				close(done)
				return errors.Wrap(err, "failed to start server")
			}

			logger.Info("starting server", zap.Stringer("addr", ln.Addr()))
			go func() {
				defer close(done)
				if err := server.Serve(context.Background(), ln); err != nil && !errors.Is(err, rawhttp.ErrServerClosed) {
					logger.Error("server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")

			return stopServer(ctx, server, mux.Router(), done)
		},
	})
}

// stopServer closes the server and waits for the serve loop to exit before destroying
// router. A failing close still destroys the router once the loop is done.
func stopServer(ctx context.Context, server *rawhttp.Server, router *rawhttp.Router, done <-chan struct{}) error {
	closeErr := server.Close()

	select {
	case <-done:
	case <-ctx.Done():
		return errors.CombineErrors(closeErr, ctx.Err())
	}

	router.Destroy()

	return closeErr
}

package rawapp

import (
	"github.com/advdv/rawhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment.
// Uses JSON encoding; RAWHTTP_LOG_LEVEL controls the level (debug, info, warn, error).
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

type zapLogger struct {
	*zap.Logger
	warn StatusCodes
}

func (l zapLogger) LogAcceptError(err error) {
	l.Logger.Error("could not accept connection", zap.Error(err))
}

func (l zapLogger) LogReadError(remote string, err error) {
	l.Logger.Warn("could not read request", zap.String("remote", remote), zap.Error(err))
}

func (l zapLogger) LogWriteError(remote string, err error) {
	l.Logger.Warn("could not send response", zap.String("remote", remote), zap.Error(err))
}

func (l zapLogger) LogCloseError(remote string, err error) {
	l.Logger.Warn("could not close connection", zap.String("remote", remote), zap.Error(err))
}

func (l zapLogger) LogMalformedRequest(remote string, status rawhttp.ParseStatus) {
	l.Logger.Info("malformed request", zap.String("remote", remote), zap.Stringer("status", status))
}

func (l zapLogger) LogUnhandledServeError(err error) {
	l.Logger.Error("unhandled server error", zap.Error(err))
}

func (l zapLogger) LogServed(remote string, route rawhttp.Route, code rawhttp.Code, size int) {
	lvl := zapcore.DebugLevel
	if l.warn.Match(code) {
		lvl = zapcore.WarnLevel
	}

	l.Logger.Log(lvl, "served",
		zap.String("remote", remote),
		zap.Stringer("method", route.Method),
		zap.String("path", route.Path),
		zap.Int("status", int(code)),
		zap.Int("size", size))
}

// newZapRawHTTPLogger adapts l for the server. Responses with a code matched by warn
// are logged at warn level, all others at debug.
func newZapRawHTTPLogger(l *zap.Logger, warn StatusCodes) rawhttp.Logger {
	return zapLogger{Logger: l.Named("rawhttp"), warn: warn}
}

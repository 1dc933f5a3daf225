package rawhttp

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about important states.
type Logger interface {
	LogAcceptError(err error)
	LogReadError(remote string, err error)
	LogWriteError(remote string, err error)
	LogCloseError(remote string, err error)
	LogMalformedRequest(remote string, status ParseStatus)
	LogUnhandledServeError(err error)
	LogServed(remote string, route Route, code Code, size int)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogAcceptError(err error) {
	l.Logger.Printf("rawhttp: could not accept connection: %s", err)
}

func (l stdLogger) LogReadError(remote string, err error) {
	l.Logger.Printf("rawhttp: could not read from %s: %s", remote, err)
}

func (l stdLogger) LogWriteError(remote string, err error) {
	l.Logger.Printf("rawhttp: could not send response to %s: %s", remote, err)
}

func (l stdLogger) LogCloseError(remote string, err error) {
	l.Logger.Printf("rawhttp: could not close connection from %s: %s", remote, err)
}

func (l stdLogger) LogMalformedRequest(remote string, status ParseStatus) {
	l.Logger.Printf("rawhttp: malformed request from %s: %s", remote, status)
}

func (l stdLogger) LogUnhandledServeError(err error) {
	l.Logger.Printf("rawhttp: unhandled server error: %s", err)
}

func (l stdLogger) LogServed(string, Route, Code, int) {}

// NewStdLogger logs failures through l. Served responses are not logged. A nil l
// logs to [log.Default].
func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}

	return stdLogger{l}
}

type TestLogger struct {
	tb testing.TB

	NumLogAcceptError         int64
	NumLogReadError           int64
	NumLogWriteError          int64
	NumLogCloseError          int64
	NumLogMalformedRequest    int64
	NumLogUnhandledServeError int64
	NumLogServed              int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogAcceptError(err error) {
	atomic.AddInt64(&l.NumLogAcceptError, 1)
	l.tb.Logf("rawhttp: could not accept connection: %s", err)
}

func (l *TestLogger) LogReadError(remote string, err error) {
	atomic.AddInt64(&l.NumLogReadError, 1)
	l.tb.Logf("rawhttp: could not read from %s: %s", remote, err)
}

func (l *TestLogger) LogWriteError(remote string, err error) {
	atomic.AddInt64(&l.NumLogWriteError, 1)
	l.tb.Logf("rawhttp: could not send response to %s: %s", remote, err)
}

func (l *TestLogger) LogCloseError(remote string, err error) {
	atomic.AddInt64(&l.NumLogCloseError, 1)
	l.tb.Logf("rawhttp: could not close connection from %s: %s", remote, err)
}

func (l *TestLogger) LogMalformedRequest(remote string, status ParseStatus) {
	atomic.AddInt64(&l.NumLogMalformedRequest, 1)
	l.tb.Logf("rawhttp: malformed request from %s: %s", remote, status)
}

func (l *TestLogger) LogUnhandledServeError(err error) {
	atomic.AddInt64(&l.NumLogUnhandledServeError, 1)
	l.tb.Logf("rawhttp: unhandled server error: %s", err)
}

func (l *TestLogger) LogServed(remote string, route Route, code Code, size int) {
	atomic.AddInt64(&l.NumLogServed, 1)
	l.tb.Logf("rawhttp: served %s to %s: %s (%d bytes)", route, remote, StatusText(code), size)
}

var _ Logger = &TestLogger{}

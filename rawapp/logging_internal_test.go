package rawapp

import (
	"testing"

	"github.com/advdv/rawhttp"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		t.Run(lvl.String(), func(t *testing.T) {
			logger, err := NewLogger(BaseEnvironment{LogLevel: lvl})
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if !logger.Core().Enabled(lvl) {
				t.Errorf("expected level %s to be enabled", lvl)
			}
			if lvl > zapcore.DebugLevel && logger.Core().Enabled(lvl-1) {
				t.Errorf("expected level %s to be disabled", lvl-1)
			}
		})
	}
}

func TestZapLogger_LogServed(t *testing.T) {
	warn, err := ParseStatusCodes("404,500-599")
	if err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	l := newZapRawHTTPLogger(zap.New(core), warn)

	route := rawhttp.Route{Method: rawhttp.MethodGet, Path: "/miaou"}
	l.LogServed("1.2.3.4:5", route, rawhttp.CodeOK, 12)
	l.LogServed("1.2.3.4:5", route, rawhttp.CodeNotFound, 0)
	l.LogServed("1.2.3.4:5", route, rawhttp.CodeInternalServerError, 0)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	for i, want := range []zapcore.Level{zapcore.DebugLevel, zapcore.WarnLevel, zapcore.WarnLevel} {
		if entries[i].Level != want {
			t.Errorf("entry %d: expected level %s, got %s", i, want, entries[i].Level)
		}
		if entries[i].LoggerName != "rawhttp" {
			t.Errorf("entry %d: expected logger name rawhttp, got %q", i, entries[i].LoggerName)
		}
	}

	fields := entries[0].ContextMap()
	if fields["method"] != "GET" || fields["path"] != "/miaou" || fields["status"] != int64(200) || fields["size"] != int64(12) {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestZapLogger_Failures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newZapRawHTTPLogger(zap.New(core), StatusCodes{})

	l.LogAcceptError(errors.New("accept"))
	l.LogReadError("r", errors.New("read"))
	l.LogWriteError("r", errors.New("write"))
	l.LogCloseError("r", errors.New("close"))
	l.LogMalformedRequest("r", rawhttp.ParseFailedMethod)
	l.LogUnhandledServeError(errors.New("boom"))

	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 2 {
		t.Errorf("expected 2 error entries, got %d", n)
	}
	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 3 {
		t.Errorf("expected 3 warn entries, got %d", n)
	}

	malformed := logs.FilterMessage("malformed request").All()
	if len(malformed) != 1 || malformed[0].ContextMap()["status"] != "failed_method" {
		t.Errorf("unexpected malformed request entries: %v", malformed)
	}
}

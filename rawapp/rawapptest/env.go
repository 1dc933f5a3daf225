package rawapptest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [rawapp.BaseEnvironment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets the [rawapp.BaseEnvironment] env vars to test defaults. A port
// of 0 lets the system pick a free one.
//
// Defaults:
//   - RAWHTTP_SERVICE_NAME: "test"
//   - RAWHTTP_LOG_LEVEL: "debug"
//   - RAWHTTP_OTEL_EXPORTER: "none"
//   - RAWHTTP_ROUTER_CAPACITY: "16"
//   - RAWHTTP_PAGES_BUCKET: ""
//   - RAWHTTP_WARN_STATUS_CODES: "500-599"
//
// Use the returned [Env] to override individual values:
//
//	rawapptest.SetBaseEnv(t, 0).PagesDir(dir).RouterCapacity(8)
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("RAWHTTP_PORT", strconv.Itoa(port))
	t.Setenv("RAWHTTP_SERVICE_NAME", "test")
	t.Setenv("RAWHTTP_LOG_LEVEL", "debug")
	t.Setenv("RAWHTTP_OTEL_EXPORTER", "none")
	t.Setenv("RAWHTTP_ROUTER_CAPACITY", "16")
	t.Setenv("RAWHTTP_PAGES_BUCKET", "")
	t.Setenv("RAWHTTP_WARN_STATUS_CODES", "500-599")
	return &Env{t: t}
}

// ServiceName overrides RAWHTTP_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_SERVICE_NAME", name)
	return e
}

// RouterCapacity overrides RAWHTTP_ROUTER_CAPACITY.
func (e *Env) RouterCapacity(n int) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_ROUTER_CAPACITY", strconv.Itoa(n))
	return e
}

// PagesDir overrides RAWHTTP_PAGES_DIR.
func (e *Env) PagesDir(dir string) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_PAGES_DIR", dir)
	return e
}

// OtelExporter overrides RAWHTTP_OTEL_EXPORTER.
func (e *Env) OtelExporter(exporter string) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_OTEL_EXPORTER", exporter)
	return e
}

// WarnStatusCodes overrides RAWHTTP_WARN_STATUS_CODES.
func (e *Env) WarnStatusCodes(expr string) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_WARN_STATUS_CODES", expr)
	return e
}

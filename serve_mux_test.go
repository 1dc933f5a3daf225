package rawhttp_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/advdv/rawhttp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

type ctxKey string

func serveCat(ctx context.Context, w *rawhttp.Body) error {
	route, _ := rawhttp.RouteFromContext(ctx)
	_, err := fmt.Fprintf(w, `hello %v, %s`, ctx.Value(ctxKey("foo")), route)
	return err
}

func middleware1(next rawhttp.Handler) rawhttp.Handler {
	return rawhttp.HandlerFunc(func(ctx context.Context, w *rawhttp.Body) error {
		return next.ServeBody(context.WithValue(ctx, ctxKey("foo"), "bar"), w)
	})
}

func dispatch(t *testing.T, mux *rawhttp.ServeMux, route rawhttp.Route) (rawhttp.Code, string, error) {
	t.Helper()

	body := rawhttp.NewBody(-1)
	defer body.Free()

	code, err := mux.Dispatch(t.Context(), route, body)

	return code, string(body.Bytes()), err
}

func TestServeMux(t *testing.T) {
	mux := rawhttp.NewServeMux()
	mux.Use(middleware1)
	mux.HandleFunc(rawhttp.MethodGet, "/miaou", serveCat, "cat")

	loc, err := mux.Reverse("cat")
	require.NoError(t, err)
	require.Equal(t, `/miaou`, loc)

	code, body, err := dispatch(t, mux, rawhttp.Route{Method: rawhttp.MethodGet, Path: "/miaou"})
	require.NoError(t, err)
	require.Equal(t, rawhttp.CodeOK, code)
	require.Equal(t, `hello bar, GET /miaou`, body)
}

func TestServeMuxNotFound(t *testing.T) {
	mux := rawhttp.NewServeMux()
	mux.HandleFunc(rawhttp.MethodGet, "/miaou", serveCat)

	code, body, err := dispatch(t, mux, rawhttp.Route{Method: rawhttp.MethodPost, Path: "/miaou"})
	require.NoError(t, err)
	require.Equal(t, rawhttp.CodeNotFound, code)
	require.Empty(t, body)

	mux.NotFound(rawhttp.HandlerFunc(func(ctx context.Context, w *rawhttp.Body) error {
		route, _ := rawhttp.RouteFromContext(ctx)
		_, err := w.WriteString("no " + route.Path)
		return err
	}))

	code, body, err = dispatch(t, mux, rawhttp.Route{Method: rawhttp.MethodGet, Path: "/ouaf"})
	require.NoError(t, err)
	require.Equal(t, rawhttp.CodeNotFound, code)
	require.Equal(t, "no /ouaf", body)
}

func TestServeMuxHandlerError(t *testing.T) {
	mux := rawhttp.NewServeMux()
	mux.HandleFunc(rawhttp.MethodGet, "/fail", func(_ context.Context, w *rawhttp.Body) error {
		_, _ = w.WriteString("partial")
		return errors.New("boom")
	})
	mux.HandleFunc(rawhttp.MethodGet, "/bad", func(context.Context, *rawhttp.Body) error {
		return rawhttp.NewError(rawhttp.CodeBadRequest, errors.New("no such cat"))
	})

	code, body, err := dispatch(t, mux, rawhttp.Route{Method: rawhttp.MethodGet, Path: "/fail"})
	require.EqualError(t, err, "serve GET /fail: boom")
	require.Equal(t, rawhttp.CodeInternalServerError, code)
	require.Empty(t, body)

	code, _, err = dispatch(t, mux, rawhttp.Route{Method: rawhttp.MethodGet, Path: "/bad"})
	require.Error(t, err)
	require.Equal(t, rawhttp.CodeBadRequest, code)
}

func TestServeMuxCapacity(t *testing.T) {
	mux := rawhttp.NewServeMuxWith(rawhttp.NewRouter(2), rawhttp.NewReverser())
	mux.HandleFunc(rawhttp.MethodGet, "/a", serveCat)
	mux.HandleFunc(rawhttp.MethodGet, "/b", serveCat)
	mux.HandleFunc(rawhttp.MethodGet, "/c", serveCat)
	require.Equal(t, 2, mux.Router().Size())

	code, _, err := dispatch(t, mux, rawhttp.Route{Method: rawhttp.MethodGet, Path: "/c"})
	require.NoError(t, err)
	require.Equal(t, rawhttp.CodeNotFound, code)
}

func TestServeMuxCapacityNamed(t *testing.T) {
	mux := rawhttp.NewServeMuxWith(rawhttp.NewRouter(1), rawhttp.NewReverser())
	mux.HandleFunc(rawhttp.MethodGet, "/a", serveCat, "a")
	mux.HandleFunc(rawhttp.MethodGet, "/b", serveCat, "b")
	require.Equal(t, 1, mux.Router().Size())

	path, err := mux.Reverse("a")
	require.NoError(t, err)
	require.Equal(t, "/a", path)

	_, err = mux.Reverse("b")
	require.ErrorContains(t, err, `no route named: "b"`)
}

func TestUseAfterHandle(t *testing.T) {
	mux := rawhttp.NewServeMux()
	mux.HandleFunc(rawhttp.MethodGet, "/miaou", serveCat, "cat")
	require.PanicsWithValue(t, "rawhttp: cannot call Use() after calling Handle", func() {
		mux.Use(middleware1)
	})
}

func TestHandleDuplicateName(t *testing.T) {
	mux := rawhttp.NewServeMux()
	mux.HandleFunc(rawhttp.MethodGet, "/miaou", serveCat, "cat")
	require.PanicsWithValue(t, `rawhttp: route with name "cat" already exists`, func() {
		mux.HandleFunc(rawhttp.MethodGet, "/chat", serveCat, "cat")
	})
}

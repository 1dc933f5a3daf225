// Package rawhttp implements a minimal single-threaded HTTP/1.1 server over raw TCP.
//
// # Overview
//
// The server accepts one connection at a time, performs a single bounded read, parses
// the request line, dispatches it to a handler through a fixed-capacity hash table and
// writes back a complete HTTP/1.1 response before closing the connection. Headers and
// bodies of requests are ignored.
//
//	mux := rawhttp.NewServeMux()
//	mux.HandleFunc(rawhttp.MethodGet, "/", func(ctx context.Context, w *rawhttp.Body) error {
//	    _, err := w.WriteString("<h1>hello</h1>")
//	    return err
//	}, "index")
//
//	srv := rawhttp.NewServer(mux, rawhttp.ServerConfig{})
//	err := srv.ListenAndServe(ctx, ":8080")
//
// # Routing
//
// A [Router] is an open-addressing table with linear probing, keyed by the FNV-1a hash
// of "<method ordinal>-<path>". Its capacity must be a power of two and never changes:
// once every slot is taken further attaches are silently dropped. Paths are matched
// exactly; there are no patterns, prefixes or wildcards. The router is frozen when the
// server starts serving, after which attaching panics.
//
// # Handlers
//
// A [Handler] fills a [Body] with the payload of the response. A matched route is
// answered with 200, a miss with 404 and the body of the not-found handler (empty by
// default, see [ServeMux.NotFound]). A handler that returns an error has its body
// discarded and the response code is taken from the error:
//
//	return rawhttp.NewError(rawhttp.CodeBadRequest, errors.New("no such cat"))
//
// Errors without a code are answered with 500.
//
// # Requests
//
// [ParseRequest] accepts exactly "<METHOD> <PATH> <VERSION>" on the first line. Only GET
// and POST are understood, the path must start with "/" and the version with "HTTP/".
// Tokens are split on ASCII whitespace. A token longer than [MaxMethodLen], [MaxPathLen]
// or [MaxVersionLen] is cut at the bound and the rest starts the next token, so an
// overlong path is answered with 400.
// Malformed requests are answered with 400.
//
// # Middleware
//
// Middleware registered with [ServeMux.Use] wraps every handler attached afterwards,
// in the order it was registered. It must be registered before the first route.
//
// # Limitations
//
// Because the loop is strictly sequential a slow client stalls every other client.
// [ServerConfig.ReadTimeout] and [ServerConfig.WriteTimeout] bound that stall. Requests
// larger than [ServerConfig.ReadBufferSize] are cut off at that size.
package rawhttp

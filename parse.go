package rawhttp

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// Upper bounds on the start line tokens. A longer token is cut at its bound and the
// remaining bytes start the next token.
const (
	MaxMethodLen  = 15
	MaxPathLen    = 255
	MaxVersionLen = 15
)

// ParseStatus is the outcome of parsing a request.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseFailedFormat
	ParseFailedMethod
	ParseFailedPath
	ParseFailedServer
)

var parseErrs = [...]error{
	ParseFailedFormat: errors.New("malformed start line"),
	ParseFailedMethod: errors.New("unsupported method"),
	ParseFailedPath:   errors.New("path must start with '/'"),
	ParseFailedServer: errors.New("server failed to parse the request"),
}

func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseFailedFormat:
		return "failed_format"
	case ParseFailedMethod:
		return "failed_method"
	case ParseFailedPath:
		return "failed_path"
	case ParseFailedServer:
		return "failed_server"
	default:
		return "unknown"
	}
}

// Err returns nil for [ParseOK] and otherwise an [*Error] carrying the code the client
// is answered with: 500 for [ParseFailedServer], 400 for every other failure.
func (s ParseStatus) Err() error {
	switch s {
	case ParseOK:
		return nil
	case ParseFailedServer:
		return NewError(CodeInternalServerError, parseErrs[s])
	case ParseFailedFormat, ParseFailedMethod, ParseFailedPath:
		return NewError(CodeBadRequest, parseErrs[s])
	default:
		return NewError(CodeBadRequest, errors.Newf("unknown parse status %d", int(s)))
	}
}

// ParseResult holds the route requested by a client. Route is only set when Status is
// [ParseOK].
type ParseResult struct {
	Status ParseStatus
	Route  Route
}

// ParseRequest interprets the start line of raw: "<METHOD> <PATH> <VERSION>". Everything
// after the first newline (headers, body) is ignored. Tokens are separated by ASCII
// whitespace only. Because an overlong token spills into the next one, a path longer
// than [MaxPathLen] fails with [ParseFailedFormat].
func ParseRequest(raw []byte) ParseResult {
	res := ParseResult{Route: Route{Method: MethodUnknown}}

	line := raw
	if idx := bytes.IndexByte(raw, '\n'); idx >= 0 {
		line = raw[:idx]
	}

	method, rest := scanToken(line, MaxMethodLen)
	path, rest := scanToken(rest, MaxPathLen)
	version, rest := scanToken(rest, MaxVersionLen)
	extra, _ := scanToken(rest, 1)

	if len(method) == 0 || len(path) == 0 || len(version) == 0 || len(extra) > 0 {
		res.Status = ParseFailedFormat
		return res
	}

	if !bytes.HasPrefix(version, []byte("HTTP/")) {
		res.Status = ParseFailedFormat
		return res
	}

	m := ParseMethod(string(method))
	if m == MethodUnknown {
		res.Status = ParseFailedMethod
		return res
	}

	if path[0] != '/' {
		res.Status = ParseFailedPath
		return res
	}

	res.Status = ParseOK
	res.Route = Route{Method: m, Path: string(path)}

	return res
}

// scanToken skips leading whitespace and returns at most n bytes of the token that
// follows, along with everything after them.
func scanToken(s []byte, n int) (tok, rest []byte) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	j := i
	for j < len(s) && j-i < n && !isSpace(s[j]) {
		j++
	}

	return s[i:j], s[j:]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

package rawhttp

import (
	"context"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeConnReadsOnce(t *testing.T) {
	logs := NewTestLogger(t)
	s := NewServer(NewServeMux(), ServerConfig{ReadBufferSize: 5, Logger: logs})

	client, conn := net.Pipe()
	defer client.Close()

	go func() { _, _ = client.Write([]byte("GET / HTTP/1.1\r\n\r\n")) }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.serveConn(t.Context(), conn)
	}()

	// only "GET /" fits the buffer, which lacks a version
	resp, err := io.ReadAll(client)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 400 Bad Request\r\nContent-Type: text/plain\r\nContent-Length: 0\r\n\r\n", string(resp))

	<-done
	assert.Equal(t, int64(1), logs.NumLogMalformedRequest)
}

func TestRespond(t *testing.T) {
	mux := NewServeMux()
	mux.HandleFunc(MethodGet, "/", func(ctx context.Context, w *Body) error {
		_, err := w.WriteString(RemoteAddr(ctx))
		return err
	})

	s := NewServer(mux, ServerConfig{Logger: NewTestLogger(t)})
	resp := s.respond(withRemoteAddr(t.Context(), "10.0.0.1:1234"), []byte("GET / HTTP/1.1\r\n\r\n"))
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nContent-Length: 13\r\n\r\n10.0.0.1:1234", string(resp))
}

func TestServeConnSkipsUnrenderedResponse(t *testing.T) {
	logs := NewTestLogger(t)
	s := NewServer(NewServeMux(), ServerConfig{Logger: logs})
	s.build = func(Code, []byte) []byte { return nil }

	client, conn := net.Pipe()
	defer client.Close()

	go func() { _, _ = client.Write([]byte("GET / HTTP/1.1\r\n\r\n")) }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.serveConn(t.Context(), conn)
	}()

	// the connection is closed without a response
	resp, err := io.ReadAll(client)
	require.NoError(t, err)
	assert.Empty(t, resp)

	<-done
	assert.Equal(t, int64(1), logs.NumLogServed)
	assert.Equal(t, int64(0), logs.NumLogWriteError)
}

func TestBuildResponseHeaderLimit(t *testing.T) {
	full := BuildResponse(CodeOK, []byte("hello"))
	hdrLen := len(full) - len("hello")

	assert.Equal(t, full, buildResponse(CodeOK, []byte("hello"), hdrLen))
	assert.Nil(t, buildResponse(CodeOK, []byte("hello"), hdrLen-1))

	large := make([]byte, 1<<20)
	assert.Less(t, len(BuildResponse(CodeInternalServerError, large))-len(large), maxHeaderSize)
}

package rawhttp

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrServerClosed is returned by [Server.Serve] after [Server.Close] or after the serve
// context was cancelled.
var ErrServerClosed = errors.New("rawhttp: server closed")

const (
	// ListenBacklog is the depth of the queue of not yet accepted connections.
	ListenBacklog = 10

	// DefaultReadBufferSize bounds the single read performed per connection.
	DefaultReadBufferSize = 4096
)

// ServerConfig holds optional configuration for the server.
type ServerConfig struct {
	// ReadBufferSize is the size of the one read that is performed per connection. Bytes
	// past it are never seen. Defaults to DefaultReadBufferSize.
	ReadBufferSize int

	// BodyLimit caps the body a handler may produce. Zero or negative means no limit.
	BodyLimit int

	// ReadTimeout and WriteTimeout bound the read and write of a connection. Zero means
	// no deadline, in which case a silent client stalls the server.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Logger is informed about per-connection failures. Defaults to a std logger.
	Logger Logger
}

// Server accepts connections one at a time: it reads one bounded buffer, dispatches
// the request, writes the response and closes the connection before accepting the next.
type Server struct {
	mux     *ServeMux
	cfg     ServerConfig
	logs    Logger
	readBuf []byte
	build   func(Code, []byte) []byte

	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

// NewServer creates a server that dispatches through mux.
func NewServer(mux *ServeMux, cfg ServerConfig) *Server {
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = DefaultReadBufferSize
	}

	if cfg.Logger == nil {
		cfg.Logger = NewStdLogger(nil)
	}

	return &Server{
		mux:     mux,
		cfg:     cfg,
		logs:    cfg.Logger,
		readBuf: make([]byte, cfg.ReadBufferSize),
		build:   BuildResponse,
	}
}

// ListenAndServe listens on the TCP address addr and then calls [Server.Serve].
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := Listen(ctx, addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until accepting fails. The router is frozen first.
// Cancelling ctx closes the listener, which unblocks a pending accept. Serve always
// returns a non-nil error: [ErrServerClosed] after a deliberate stop.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if err := s.track(ln); err != nil {
		return err
	}

	s.mux.Router().Freeze()

	stop := context.AfterFunc(ctx, func() { _ = s.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}

			s.logs.LogAcceptError(err)
			_ = s.Close()

			return errors.Wrap(err, "accept")
		}

		s.serveConn(ctx, conn)
	}
}

// Addr returns the address the server is listening on, or nil before serving.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}

	return s.ln.Addr()
}

// Close closes the listener. It is safe to call more than once and before serving.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.ln == nil {
		return nil
	}

	if err := s.ln.Close(); err != nil {
		return errors.Wrap(err, "close listener")
	}

	return nil
}

func (s *Server) track(ln net.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		_ = ln.Close()
		return ErrServerClosed
	}

	if s.ln != nil {
		return errors.New("rawhttp: server is already serving")
	}

	s.ln = ln

	return nil
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	defer func() {
		if err := conn.Close(); err != nil {
			s.logs.LogCloseError(remote, err)
		}
	}()

	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	n, err := conn.Read(s.readBuf)
	if n == 0 {
		if err == nil {
			err = errors.New("empty read")
		}

		s.logs.LogReadError(remote, err)

		return
	}

	resp := s.respond(withRemoteAddr(ctx, remote), s.readBuf[:n])
	if resp == nil {
		return
	}

	if s.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}

	if _, err := conn.Write(resp); err != nil {
		s.logs.LogWriteError(remote, err)
	}
}

// respond turns the raw bytes of a request into the bytes of its response.
func (s *Server) respond(ctx context.Context, raw []byte) []byte {
	remote := RemoteAddr(ctx)

	res := ParseRequest(raw)
	if res.Status != ParseOK {
		s.logs.LogMalformedRequest(remote, res.Status)

		code := CodeOf(res.Status.Err())
		s.logs.LogServed(remote, res.Route, code, 0)

		return s.build(code, nil)
	}

	limit := s.cfg.BodyLimit
	if limit <= 0 {
		limit = -1
	}

	body := NewBody(limit)
	defer body.Free()

	code, err := s.mux.Dispatch(ctx, res.Route, body)
	if err != nil {
		s.logs.LogUnhandledServeError(err)
	}

	s.logs.LogServed(remote, res.Route, code, body.Len())

	return s.build(code, body.Bytes())
}

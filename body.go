package rawhttp

import (
	"bytes"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrBufferFull is returned when a write would grow a [Body] past its limit.
var ErrBufferFull = errors.New("rawhttp: body buffer is full")

var bodyPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Body is the output slot a [Handler] fills with the response payload. Leaving it empty
// signals that there is no content. Its memory is scoped to one connection: the server
// frees it once the response has been written.
type Body struct {
	buf   *bytes.Buffer
	limit int
}

// NewBody takes a buffer from the pool. A negative limit means writes are unbounded.
func NewBody(limit int) *Body {
	buf, _ := bodyPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &Body{buf: buf, limit: limit}
}

// Write appends p to the body. A write that would exceed the limit is rejected entirely.
func (b *Body) Write(p []byte) (int, error) {
	if b.limit >= 0 && b.buf.Len()+len(p) > b.limit {
		return 0, ErrBufferFull
	}

	return b.buf.Write(p)
}

// WriteString appends s to the body, subject to the same limit as Write.
func (b *Body) WriteString(s string) (int, error) {
	if b.limit >= 0 && b.buf.Len()+len(s) > b.limit {
		return 0, ErrBufferFull
	}

	return b.buf.WriteString(s)
}

// Bytes returns the payload written so far. It is only valid until Reset or Free.
func (b *Body) Bytes() []byte { return b.buf.Bytes() }

// Len returns the number of bytes written so far.
func (b *Body) Len() int { return b.buf.Len() }

// Reset discards everything written so far.
func (b *Body) Reset() { b.buf.Reset() }

// Free returns the underlying buffer to the pool. The body must not be used afterwards.
func (b *Body) Free() {
	if b.buf == nil {
		return
	}

	b.buf.Reset()
	bodyPool.Put(b.buf)
	b.buf = nil
}

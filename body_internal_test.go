package rawhttp

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	body := NewBody(4)
	defer body.Free()

	n, err := body.WriteString("abc")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = body.Write([]byte("de"))
	require.True(t, errors.Is(err, ErrBufferFull))
	require.Equal(t, 0, n)
	require.Equal(t, "abc", string(body.Bytes()))

	n, err = body.Write([]byte("d"))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = body.WriteString("e")
	require.ErrorIs(t, err, ErrBufferFull)
	require.Equal(t, 4, body.Len())
}

func TestBodyUnbounded(t *testing.T) {
	body := NewBody(-1)
	defer body.Free()

	for range 100 {
		_, err := body.WriteString("0123456789")
		require.NoError(t, err)
	}

	assert.Equal(t, 1000, body.Len())
}

func TestBodyResetAndFree(t *testing.T) {
	body := NewBody(-1)
	_, _ = body.WriteString("discard me")

	body.Reset()
	assert.Equal(t, 0, body.Len())

	body.Free()
	assert.Nil(t, body.buf)
	require.NotPanics(t, body.Free)

	// pooled buffers come back empty
	again := NewBody(-1)
	defer again.Free()
	assert.Equal(t, 0, again.Len())
}

package rawhttp_test

import (
	"testing"

	"github.com/advdv/rawhttp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	err1 := rawhttp.NewError(rawhttp.CodeBadRequest, errors.New("foo"))
	require.Equal(t, rawhttp.Code(400), err1.Code())
	require.Equal(t, rawhttp.CodeBadRequest, rawhttp.CodeOf(err1))
	require.Equal(t, rawhttp.CodeBadRequest, rawhttp.CodeOf(errors.Wrap(err1, "wrapped")))
	require.Equal(t, "Bad Request: foo", err1.Error())

	require.Equal(t, rawhttp.CodeUnknown, rawhttp.CodeOf(errors.New("bar")))
	require.Equal(t, rawhttp.CodeUnknown, rawhttp.CodeOf(nil))
	require.Equal(t, "Unknown: rab", rawhttp.NewError(900, errors.New("rab")).Error())
}

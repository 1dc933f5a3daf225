package rawhttp_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/advdv/rawhttp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	logs := rawhttp.NewStdLogger(log.New(&buf, "", 0))

	logs.LogReadError("1.2.3.4:5", errors.New("eof"))
	logs.LogMalformedRequest("1.2.3.4:5", rawhttp.ParseFailedPath)
	logs.LogServed("1.2.3.4:5", rawhttp.Route{Method: rawhttp.MethodGet, Path: "/"}, rawhttp.CodeOK, 5)

	assert.Equal(t, "rawhttp: could not read from 1.2.3.4:5: eof\n"+
		"rawhttp: malformed request from 1.2.3.4:5: failed_path\n", buf.String())
}

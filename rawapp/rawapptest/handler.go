package rawapptest

import (
	"context"

	"github.com/advdv/rawhttp"
)

// CallHandler invokes handler with an unbounded body and returns what it wrote.
func CallHandler(ctx context.Context, handler rawhttp.Handler) []byte {
	body := rawhttp.NewBody(-1)
	defer body.Free()

	if err := handler.ServeBody(ctx, body); err != nil {
		panic("rawapptest: handler returned error: " + err.Error())
	}

	return append([]byte(nil), body.Bytes()...)
}

//go:build !linux

package rawhttp

import (
	"context"
	"net"

	"github.com/cockroachdb/errors"
)

// Listen opens an IPv4 TCP listener on addr. Outside of Linux the backlog is left to
// the operating system.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "listen")
	}

	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp4", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %q", addr)
	}

	return ln, nil
}

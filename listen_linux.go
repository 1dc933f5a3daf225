//go:build linux

package rawhttp

import (
	"context"
	"net"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Listen opens an IPv4 TCP listener on addr with a backlog of [ListenBacklog]. The
// socket is set up by hand because the standard library always uses the system's
// maximum backlog.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "listen")
	}

	tcpAddr, err := net.ResolveTCPAddr("tcp4", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %q", addr)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return nil, errors.Wrap(os.NewSyscallError("socket", err), "failed to create socket")
	}

	if err := setupSocket(fd, tcpAddr); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	f := os.NewFile(uintptr(fd), "rawhttp-listener")
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to wrap socket")
	}

	return ln, nil
}

func setupSocket(fd int, addr *net.TCPAddr) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return errors.Wrap(os.NewSyscallError("setsockopt", err), "failed to set SO_REUSEADDR")
	}

	sa := &unix.SockaddrInet4{Port: addr.Port}
	if ip4 := addr.IP.To4(); ip4 != nil {
		copy(sa.Addr[:], ip4)
	}

	if err := unix.Bind(fd, sa); err != nil {
		return errors.Wrapf(os.NewSyscallError("bind", err), "failed to bind socket to %s", addr)
	}

	if err := unix.Listen(fd, ListenBacklog); err != nil {
		return errors.Wrap(os.NewSyscallError("listen", err), "failed to listen")
	}

	return nil
}

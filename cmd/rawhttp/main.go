// Command rawhttp serves the static pages over the raw HTTP server.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/advdv/rawhttp/rawapp"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "rawhttp <port>",
	Short: "Serve static pages over a single-threaded HTTP/1.1 server",
	Long: `Serve the pages in RAWHTTP_PAGES_DIR (or RAWHTTP_PAGES_BUCKET) on the given port.

Routes:
  GET /        index.html
  GET /miaou   cat.html
  GET /ouaf    dog.html
  otherwise    404.html`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func runServe(_ *cobra.Command, args []string) error {
	port, err := parsePort(args[0])
	if err != nil {
		return err
	}

	app := rawapp.NewApp[rawapp.BaseEnvironment](func(m *rawapp.Mux, src rawapp.PageSource, logs *zap.Logger) {
		rawapp.RegisterPages(m, src, logs)
	}, rawapp.WithPort(port))
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()

	return nil
}

// parsePort parses the positional port argument. Zero is rejected.
func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid port %q", s)
	}

	if port <= 0 || port > 65535 {
		return 0, errors.Newf("invalid port %q: must be between 1 and 65535", s)
	}

	return port, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rawhttp:", err)
		os.Exit(1)
	}
}

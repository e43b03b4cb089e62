// Command panelctl inspects, exports and seeds lender panels, and runs
// one-off evaluations against a panel without starting the service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/observability"
)

const usage = `usage: panelctl <command> [flags]

commands:
  validate   check a panel for structural errors and tier gaps
  export     write a panel as YAML
  import     replace the lender_profiles table with a panel file
  evaluate   evaluate an applicant read as JSON from stdin
  dev-certs  write a throwaway CA and server certificate for gRPC TLS
  token      mint a panel_admin operator token for the admin endpoints
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := observability.InitLogger(observability.LogConfig{
		Output: os.Stderr,
		Level:  "info",
		Format: "text",
	}).With("component", "panelctl")

	app := &cli{stdin: os.Stdin, stdout: os.Stdout, logger: logger}
	code, err := app.run(ctx, os.Args[1], os.Args[2:])
	if err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}

// Command querydesk loads a tabular file into an embedded SQL engine and
// lets you query it from a terminal UI, or runs a single query and prints
// the result.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/querydesk/internal/cli"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], cli.Options{
		Version: Version,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
	stop()
	os.Exit(code)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matzehuels/apkgraph/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context) int {
	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Close(shutdownCtx); err != nil {
			c.Logger.Warn("tracing shutdown", "err", err)
		}
	}()

	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130 // SIGINT
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		return 1
	}
	return 0
}

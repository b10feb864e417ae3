// Command astar solves the registered search problems from the command line.
//
// Usage:
//
//	astar solve [problem] [initial-state] [flags]
//	astar list
//	astar history --archive sqlite:reports.db
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		logger.Error("astar failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// Command testsel selects a minimum-cost set of diagnostic tests that
// distinguishes every pair of diseases, using branch-and-bound over an LP
// relaxation.
//
// Usage:
//
//	testsel [flags] <instance-file>
//	testsel batch [--jobs N] <instance-file>...
//	testsel gen --tests N --diseases M [--seed S] [-o file]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

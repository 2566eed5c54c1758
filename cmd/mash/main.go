// Package main is the entrypoint of mash.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mash/internal/cfg"
	"mash/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cfg.Execute(ctx); err != nil {
		logging.E("%v", err)
		os.Exit(1)
	}
}

// Package main is the entrypoint of vidgrab.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vidgrab/internal/cfg"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/logger"
)

// main is the main entrypoint of the program.
func main() {
	startTime := time.Now()

	// create cancellable context for shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// ---- RUN PROGRAM ----
	runErr := cfg.Execute(ctx)

	// ---- SHUTDOWN ----
	cancel()
	logger.Pl.D(1, "%s finished after %v", consts.ProgramName, time.Since(startTime).Round(time.Millisecond))
	if err := logger.Pl.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", consts.ProgramName, runErr)
		os.Exit(1)
	}
}

// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/cli"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/logger"
	verpkg "github.com/H0llyW00dzZ/tls-cert-verifier/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130 // SIGINT
)

// cleanupGrace bounds how long an interrupted command may keep running.
const cleanupGrace = 100 * time.Millisecond

func main() {
	// stdout carries certificate output, diagnostics go to stderr
	log := logger.NewCLILogger()
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, log, func(ctx context.Context) error {
		return cli.Execute(ctx, version, log)
	})
	stop()
	os.Exit(code)
}

// run executes fn in its own goroutine and maps its outcome to an exit code.
func run(ctx context.Context, log logger.Logger, fn func(context.Context) error) int {
	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("Error: %v", err)
			return exitFailure
		}
	case <-ctx.Done():
		log.Println("Verification cancelled by signal. Exiting...")
		select {
		case <-done:
		case <-time.After(cleanupGrace):
		}
		return exitInterrupted
	}

	if cli.OperationPerformedSuccessfully {
		log.Println("TLS certificate verifier stopped.")
	}
	return exitOK
}

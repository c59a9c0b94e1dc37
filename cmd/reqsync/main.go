// Package main is the entry point for reqsync.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/reqsync/cmd/reqsync/commands"
	"go.trai.ch/reqsync/internal/app"
	"go.trai.ch/reqsync/internal/core/domain"
	_ "go.trai.ch/reqsync/internal/wiring"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageErrors map to exitUsage: the input was wrong, nothing was changed.
var usageErrors = []error{
	domain.ErrConflictingRequirements,
	domain.ErrNoRequirementsFiles,
	domain.ErrInputFileExtension,
	domain.ErrInvalidRequirements,
	domain.ErrConfigLoadFailed,
	domain.ErrUnknownLogFormat,
	commands.ErrUsage,
}

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFailure
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 3. Execution
	err = cli.Execute(ctx)
	if err == nil {
		return exitOK
	}

	// Failed items were already listed in the summary.
	if errors.Is(err, domain.ErrSyncFailed) {
		return exitFailure
	}

	components.Logger.Error(err)

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		components.Logger.Info("Use --force to let the requirement from the last file win")
	}

	for _, usage := range usageErrors {
		if errors.Is(err, usage) {
			return exitUsage
		}
	}
	return exitFailure
}

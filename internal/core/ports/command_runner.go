package ports

import (
	"context"
	"io"

	"go.trai.ch/reqsync/internal/core/domain"
)

// CommandRunner runs external processes.
//
//go:generate mockgen -source=command_runner.go -destination=mocks/mock_command_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd, streaming its output to stdout and stderr, and waits for it to exit.
	Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error

	// Output executes cmd and returns its standard output.
	Output(ctx context.Context, cmd domain.Command) ([]byte, error)
}

package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// OSRunner implements Runner using real OS processes
type OSRunner struct {
	ctx context.Context
}

// NewOSRunner creates a new OSRunner
func NewOSRunner() *OSRunner {
	return &OSRunner{
		ctx: context.Background(),
	}
}

// WithContext returns a new runner with the given context
func (r *OSRunner) WithContext(ctx context.Context) Runner {
	return &OSRunner{
		ctx: ctx,
	}
}

// Run executes the command with inherited stdio. Interactive commands
// (logins, installers with progress bars) need the caller's terminal.
func (r *OSRunner) Run(dir, name string, args ...string) error {
	cmd := exec.CommandContext(r.ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s failed: %w", name, err)
	}

	return nil
}

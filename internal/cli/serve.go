package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/stackinit/internal/edge"
	"github.com/jakoblorz/stackinit/internal/logging"
)

// ServeCommand handles the serve command
type ServeCommand struct{}

// NewServeCommand creates a new serve command
func NewServeCommand() *cobra.Command {
	cmd := &ServeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the region-aware edge server",
		Long: `Run the edge server in front of the application renderer. Every request
passes the gate: header stamping, trailing-slash normalization, write-replay
signaling for read replicas, compression, and static asset serving.`,
		RunE: cmd.Run,
	}

	return cobraCmd
}

// Run executes the serve command
func (c *ServeCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, err := edge.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format := "console"
	if cfg.Production() {
		format = "json"
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return c.serve(ctx, cfg)
}

func (c *ServeCommand) serve(ctx context.Context, cfg *edge.Config) error {
	return edge.NewServer(cfg, nil).Run(ctx)
}

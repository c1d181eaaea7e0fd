package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/stackinit/internal/filesystem"
	"github.com/jakoblorz/stackinit/internal/runner"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, run runner.Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stackinit",
		Short: "Bootstrap and serve the web-app starter template",
		Long: `stackinit customizes a freshly cloned starter template and runs the
region-aware edge server in front of the application.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(NewInitCommand(fs, run))
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	run := runner.NewOSRunner()

	rootCmd := NewRootCommand(fs, run)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

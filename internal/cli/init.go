package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/stackinit/internal/filesystem"
	"github.com/jakoblorz/stackinit/internal/pkgmanager"
	"github.com/jakoblorz/stackinit/internal/runner"
	"github.com/jakoblorz/stackinit/internal/scaffold"
	"github.com/jakoblorz/stackinit/internal/tui"
	"github.com/jakoblorz/stackinit/internal/tui/initflow"
)

// InitCommand handles the init command
type InitCommand struct {
	fs     filesystem.FileSystem
	runner runner.Runner

	typescript bool
	pkgManager string
	assumeYes  bool
}

// NewInitCommand creates a new init command
func NewInitCommand(fs filesystem.FileSystem, run runner.Runner) *cobra.Command {
	cmd := &InitCommand{fs: fs, runner: run}

	cobraCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Customize a freshly cloned template in place",
		Long: `Customize a freshly cloned starter template: derive the app name from
the directory, rotate the session secret, rewrite the manifest and README,
remove template housekeeping files, and optionally provision a cloud backend.

Runs once per clone and is safe to re-run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.typescript, "typescript", true,
		"Keep the TypeScript flavor of the template (--typescript=false strips it)")
	cobraCmd.Flags().StringVar(&cmd.pkgManager, "pkg-manager", "",
		"Package manager to use (npm, pnpm, yarn; default: detect)")
	cobraCmd.Flags().BoolVar(&cmd.assumeYes, "yes", false,
		"Answer every prompt with its default, without asking")

	return cobraCmd
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) > 0 {
		dir = args[0]
	}

	var manager pkgmanager.Manager
	if c.pkgManager != "" {
		parsed, err := pkgmanager.Parse(c.pkgManager)
		if err != nil {
			return err
		}
		manager = parsed
	}

	ctx, err := scaffold.NewContext(c.fs, dir, c.typescript, manager)
	if err != nil {
		return fmt.Errorf("failed to build scaffold context: %w", err)
	}

	fmt.Println(tui.SubtleStyle.Render(
		fmt.Sprintf("Initializing %s (%s, %s)...", ctx.AppName, variantName(ctx.Typed), ctx.PackageManager)))

	report, err := scaffold.NewPipeline(c.fs, ctx).Run()
	if err != nil {
		return fmt.Errorf("failed to rewrite template: %w", err)
	}

	if failed := report.FailedPaths(); len(failed) > 0 {
		warning, err := scaffold.RenderWriteWarning(failed)
		if err != nil {
			return err
		}
		fmt.Printf("⚠️  %s\n", tui.WarningStyle.Render(warning))
	} else {
		fmt.Printf("✓ %s\n", tui.SuccessStyle.Render(fmt.Sprintf("Template rewritten for %s", ctx.AppName)))
	}

	flow := initflow.NewFlow(ctx, c.runner.WithContext(cmd.Context()), c.assumeYes)
	result, err := flow.Run()
	if err != nil {
		return fmt.Errorf("setup flow failed: %w", err)
	}

	if result == nil {
		// aborted or no terminal: everything declined, quietly done
		return nil
	}

	message, err := scaffold.RenderCompletion(scaffold.CompletionData{
		AppName:    ctx.AppName,
		DevCommand: result.DevCommand,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)

	return nil
}

func variantName(typed bool) string {
	if typed {
		return "typescript"
	}
	return "javascript"
}

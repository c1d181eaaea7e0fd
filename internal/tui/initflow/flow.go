package initflow

import (
	"errors"
	"fmt"
	"os"
	"strings"

	huh "github.com/charmbracelet/huh"

	"github.com/jakoblorz/stackinit/internal/runner"
	"github.com/jakoblorz/stackinit/internal/scaffold"
	"github.com/jakoblorz/stackinit/internal/tui"
)

const (
	cloudCLI           = "supabase"
	cloudClientPackage = "@supabase/supabase-js"
)

// confirmFunc answers a yes/no prompt. Returning huh.ErrUserAborted
// anywhere cancels the whole flow.
type confirmFunc func(title, description string, defaultValue bool) (bool, error)

// Flow orchestrates the post-scaffold question/answer sequence using huh
// forms. Prompts are strictly sequential: later commands depend on
// earlier answers.
type Flow struct {
	ctx       *scaffold.Context
	runner    runner.Runner
	theme     *huh.Theme
	assumeYes bool
	confirm   confirmFunc
}

// Result captures the answers of a completed flow.
type Result struct {
	CloudBackend  bool
	InstalledCLI  bool
	RanValidation bool
	DevCommand    string
}

// NewFlow constructs a Flow for the given scaffold context.
func NewFlow(ctx *scaffold.Context, run runner.Runner, assumeYes bool) *Flow {
	f := &Flow{
		ctx:       ctx,
		runner:    run,
		theme:     tui.NewHuhTheme(),
		assumeYes: assumeYes,
	}
	f.confirm = f.promptConfirm
	return f
}

// Run executes the prompts in order; returns a nil result when the user
// aborts any prompt or no terminal is attached (both mean "declined
// everything"). A non-zero exit from any provisioned command is fatal.
func (f *Flow) Run() (*Result, error) {
	if !f.assumeYes && !interactiveTerminal() {
		return nil, nil
	}

	result := &Result{
		DevCommand: strings.Join(f.ctx.PackageManager.RunCommand("dev"), " "),
	}

	enableCloud, err := f.confirm(
		fmt.Sprintf("Set up a %s backend for %s?", cloudCLI, f.ctx.AppName),
		"Provisions credentials and a project via the cloud CLI.",
		false,
	)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	if enableCloud {
		result.CloudBackend = true
		if err := f.provisionCloudBackend(result); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, nil
			}
			return nil, err
		}
	}

	runValidation, err := f.confirm(
		"Run the validate script now?",
		"Runs lint, tests, and the build once to verify the setup.",
		false,
	)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	if runValidation {
		result.RanValidation = true
		if err := f.run(f.ctx.PackageManager.RunCommand("validate")); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (f *Flow) provisionCloudBackend(result *Result) error {
	installGlobally, err := f.confirm(
		fmt.Sprintf("Install the %s CLI globally?", cloudCLI),
		"Recommended so provisioning commands are on your PATH.",
		true,
	)
	if err != nil {
		return err
	}

	if installGlobally {
		result.InstalledCLI = true
		if err := f.run(f.ctx.PackageManager.InstallCommand(cloudCLI, true)); err != nil {
			return err
		}
	}

	if err := f.run(f.ctx.PackageManager.InstallCommand(cloudClientPackage, false)); err != nil {
		return err
	}

	if err := f.run([]string{cloudCLI, "login"}); err != nil {
		return err
	}

	return f.run([]string{cloudCLI, "init"})
}

func (f *Flow) promptConfirm(title, description string, defaultValue bool) (bool, error) {
	if f.assumeYes {
		return defaultValue, nil
	}

	answer := defaultValue
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	).WithTheme(f.theme)

	if err := form.Run(); err != nil {
		return false, err
	}
	return answer, nil
}

func (f *Flow) run(argv []string) error {
	fmt.Printf("$ %s\n", strings.Join(argv, " "))
	return f.runner.Run(f.ctx.RootDir, argv[0], argv[1:]...)
}

// interactiveTerminal reports whether stdin is attached to a terminal.
// Without one the whole flow is treated as "user declined everything".
func interactiveTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

package runner

import "context"

// Runner abstracts external command execution so flows can be tested
// without spawning processes.
type Runner interface {
	// Run executes name with args in dir, wiring the command to the
	// caller's terminal (stdin/stdout/stderr inherited). A non-zero
	// exit is returned as an error.
	Run(dir, name string, args ...string) error

	// WithContext returns a runner whose commands are bound to ctx.
	WithContext(ctx context.Context) Runner
}

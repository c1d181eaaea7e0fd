package runner

import (
	"context"
	"strings"
	"sync"
)

// Invocation records a single command execution
type Invocation struct {
	Dir  string
	Name string
	Args []string
}

// String renders the invocation as it would appear on a shell
func (i Invocation) String() string {
	parts := append([]string{i.Name}, i.Args...)
	return strings.Join(parts, " ")
}

// MockRunner records invocations instead of spawning processes
type MockRunner struct {
	mu          sync.Mutex
	invocations []Invocation

	// Errors maps rendered invocations (see Invocation.String) to
	// errors returned from Run.
	Errors map[string]error
}

// NewMockRunner creates a new MockRunner
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Errors: make(map[string]error),
	}
}

func (r *MockRunner) WithContext(ctx context.Context) Runner {
	return r
}

func (r *MockRunner) Run(dir, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv := Invocation{Dir: dir, Name: name, Args: args}
	r.invocations = append(r.invocations, inv)

	if err, ok := r.Errors[inv.String()]; ok {
		return err
	}
	return nil
}

// Invocations returns a copy of all recorded invocations
func (r *MockRunner) Invocations() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Invocation(nil), r.invocations...)
}

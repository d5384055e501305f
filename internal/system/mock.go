package system

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing. Results are keyed by
// the joined command line ("podman start kiln-web1"); unmatched commands
// return DefaultOutput and DefaultErr.
type MockExecutor struct {
	mu sync.Mutex

	// Calls records every executed command line.
	Calls []string

	// Outputs maps command lines to canned output.
	Outputs map[string][]byte

	// Errors maps command lines to injected errors.
	Errors map[string]error

	// Missing lists binary names LookPath should report as absent.
	Missing map[string]bool

	// DefaultOutput and DefaultErr are returned for unmatched commands.
	DefaultOutput []byte
	DefaultErr    error
}

// NewMockExecutor creates a MockExecutor with empty state.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Outputs: make(map[string][]byte),
		Errors:  make(map[string]error),
		Missing: make(map[string]bool),
	}
}

func key(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// SetOutput registers canned output for a command line.
func (m *MockExecutor) SetOutput(cmdline string, output []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outputs[cmdline] = output
}

// SetError registers an injected error for a command line.
func (m *MockExecutor) SetError(cmdline string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[cmdline] = err
}

// CallLines returns a copy of all recorded command lines.
func (m *MockExecutor) CallLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.Calls))
	copy(calls, m.Calls)
	return calls
}

func (m *MockExecutor) record(name string, args []string) string {
	k := key(name, args)
	m.Calls = append(m.Calls, k)
	return k
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.record(name, args)

	if err, ok := m.Errors[k]; ok {
		return m.Outputs[k], err
	}
	if out, ok := m.Outputs[k]; ok {
		return out, nil
	}
	return m.DefaultOutput, m.DefaultErr
}

func (m *MockExecutor) ExecuteWithStdin(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	return m.Execute(ctx, name, args...)
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.record(name, args)
	return m.Errors[k]
}

func (m *MockExecutor) ReplaceProcess(name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.record(name, args)
	return m.Errors[k]
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

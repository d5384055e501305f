package driver

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/emberworks/kiln-ctl/internal/system"
)

// UnknownDriverError is returned when a configured driver name is not
// registered. It is fatal to scenario startup; no container operation is
// attempted after it.
type UnknownDriverError struct {
	Name  string
	Known []string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown driver %q (registered: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Options configures driver construction.
type Options struct {
	// Executor runs engine commands; defaults to the real OS executor.
	Executor system.CommandExecutor

	// ContainerPrefix is prepended to instance names to form container
	// names. May be empty.
	ContainerPrefix string
}

// Factory constructs a driver from options.
type Factory func(opts Options) Driver

// Registry maps driver names to factories. The default registry is
// populated at process start; construction via Resolve is a one-shot
// operation per scenario.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a driver factory under a name. Later registrations replace
// earlier ones.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Resolve constructs the driver registered under name, or fails with
// *UnknownDriverError.
func (r *Registry) Resolve(name string, opts Options) (Driver, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnknownDriverError{Name: name, Known: r.Names()}
	}

	if opts.Executor == nil {
		opts.Executor = system.DefaultExecutor()
	}

	return factory(opts), nil
}

// Names returns all registered driver names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.Register("docker", NewDockerDriver)
	defaultRegistry.Register("podman", NewPodmanDriver)
}

// Default returns the process-wide registry with the built-in drivers.
func Default() *Registry {
	return defaultRegistry
}

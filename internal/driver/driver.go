package driver

import (
	"context"
)

// InstanceStatus represents the state of a container instance
type InstanceStatus string

const (
	StatusRunning  InstanceStatus = "running"
	StatusStopped  InstanceStatus = "stopped"
	StatusNotFound InstanceStatus = "not-found"
	StatusUnknown  InstanceStatus = "unknown"
)

// InstanceInfo holds information about a container instance
type InstanceInfo struct {
	Name      string
	Status    InstanceStatus
	StartedAt string
	IPAddress string
}

// ExecResult holds the result of executing a command in an instance.
// Stdout carries the combined output; the executor does not split streams.
type ExecResult struct {
	ExitCode int
	Stdout   string
}

// ExecOptions holds options for executing a command in an instance
type ExecOptions struct {
	User        string   // User to run as
	WorkingDir  string   // Working directory
	Env         []string // Environment variables
	Interactive bool     // Allocate a TTY
}

// CreateOptions holds options for creating an instance. Fields mirror the
// scenario platform configuration and are translated to engine CLI arguments
// without further interpretation.
type CreateOptions struct {
	Name           string
	Image          string
	Command        string            // Override command; empty means the keep-alive default
	Privileged     bool
	Pull           bool              // Pull the image before create
	Env            map[string]string
	Volumes        []string          // host:container[:mode]
	PublishedPorts []string          // [ip:]hostPort:containerPort[/proto]
	Networks       []string
	Start          bool              // Start immediately after creation
}

// Driver is the contract every container backend must satisfy. A driver
// translates abstract lifecycle intents into backend-specific commands; it
// holds no per-instance state and a single driver value serves a whole
// scenario run. Calls for the same instance must be sequenced by the caller.
type Driver interface {
	// Name returns the driver identifier (e.g., "docker", "podman")
	Name() string

	// LoginCmdTemplate returns a format string with the named placeholders
	// {instance}, {columns}, and {lines} describing how to open an
	// interactive shell into a running instance. Pure; no I/O.
	LoginCmdTemplate() string

	// LoginOptions returns the driver-supplied variables for the login
	// template. It always contains "instance"; terminal geometry is merged
	// in by the caller. Pure; no I/O.
	LoginOptions(instanceName string) map[string]string

	// AnsibleConnectionOptions returns connection metadata for the
	// provisioning layer. Backends without connection-plugin support
	// return an unsupported ConnectionOptions; that is a capability gap,
	// not an error. Pure; no I/O.
	AnsibleConnectionOptions(instanceName string) ConnectionOptions

	// Create creates a new instance
	Create(ctx context.Context, opts CreateOptions) error

	// Start starts an existing instance
	Start(ctx context.Context, name string) error

	// Stop stops a running instance
	Stop(ctx context.Context, name string) error

	// Destroy stops and removes an instance
	Destroy(ctx context.Context, name string) error

	// IsRunning checks if an instance is currently running
	IsRunning(ctx context.Context, name string) (bool, error)

	// Status returns detailed status of an instance
	Status(ctx context.Context, name string) (*InstanceInfo, error)

	// Exec executes a command inside an instance
	Exec(ctx context.Context, name string, command []string, opts ExecOptions) (*ExecResult, error)

	// ExecInteractive executes a command with an interactive TTY,
	// replacing the current process
	ExecInteractive(ctx context.Context, name string, command []string, opts ExecOptions) error

	// List returns all instances managed by this driver
	List(ctx context.Context) ([]*InstanceInfo, error)
}

// ConnectionOptions carries backend-specific connection variables for the
// provisioning integration. Supported distinguishes "no options needed" from
// "connection plugin not available for this backend".
type ConnectionOptions struct {
	Supported bool
	Vars      map[string]string
}

// Unsupported returns ConnectionOptions marking the capability as absent.
func Unsupported() ConnectionOptions {
	return ConnectionOptions{}
}

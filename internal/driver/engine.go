package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/emberworks/kiln-ctl/internal/logging"
	"github.com/emberworks/kiln-ctl/internal/system"
)

// defaultKeepAlive keeps a container alive until the scenario is done with
// it, for images that declare no long-running command of their own.
const defaultKeepAlive = `bash -c "while true; do sleep 10000; done"`

// Profile is the complete set of backend-specific behavior. The engine
// implements the full Driver contract once; a backend is a Profile value,
// not a type hierarchy. A new CLI-compatible backend only supplies the
// handful of behaviors that differ syntactically.
type Profile struct {
	// DriverName is the registered driver identifier.
	DriverName string

	// Command is the engine binary to invoke ("docker", "podman").
	Command string

	// LoginTemplate is the login shell command template with {instance},
	// {columns}, and {lines} placeholders.
	LoginTemplate string

	// ConnectionVars supplies ansible connection variables for an
	// instance. A nil func marks the capability as unavailable.
	ConnectionVars func(instanceName string) map[string]string
}

// engine is the shared CLI-driven lifecycle implementation behind every
// backend. All state is configuration; it is safe for concurrent use across
// distinct instances.
type engine struct {
	profile  Profile
	prefix   string
	executor system.CommandExecutor
}

func newEngine(profile Profile, opts Options) *engine {
	return &engine{
		profile:  profile,
		prefix:   opts.ContainerPrefix,
		executor: opts.Executor,
	}
}

// containerName returns the full container name for an instance
func (e *engine) containerName(instanceName string) string {
	return e.prefix + instanceName
}

func (e *engine) Name() string {
	return e.profile.DriverName
}

func (e *engine) LoginCmdTemplate() string {
	return e.profile.LoginTemplate
}

func (e *engine) LoginOptions(instanceName string) map[string]string {
	return map[string]string{"instance": e.containerName(instanceName)}
}

func (e *engine) AnsibleConnectionOptions(instanceName string) ConnectionOptions {
	if e.profile.ConnectionVars == nil {
		return Unsupported()
	}
	return ConnectionOptions{
		Supported: true,
		Vars:      e.profile.ConnectionVars(e.containerName(instanceName)),
	}
}

// runCmd executes an engine command
func (e *engine) runCmd(ctx context.Context, args ...string) (string, error) {
	out, err := e.executor.Execute(ctx, e.profile.Command, args...)
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %s: %w", e.profile.Command, args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// Create creates a new instance from a platform image
func (e *engine) Create(ctx context.Context, opts CreateOptions) error {
	containerName := e.containerName(opts.Name)
	logging.Debug("creating instance", "name", containerName, "driver", e.profile.DriverName, "image", opts.Image)

	if opts.Pull {
		logging.Debug("pulling image", "image", opts.Image)
		if _, err := e.runCmd(ctx, "pull", opts.Image); err != nil {
			return err
		}
	}

	args := []string{"create", "--name", containerName}

	if opts.Privileged {
		args = append(args, "--privileged")
	}

	for key, value := range opts.Env {
		args = append(args, "-e", fmt.Sprintf("%s=%s", key, value))
	}

	for _, volume := range opts.Volumes {
		args = append(args, "-v", volume)
	}

	for _, port := range opts.PublishedPorts {
		args = append(args, "-p", port)
	}

	for _, network := range opts.Networks {
		args = append(args, "--network", network)
	}

	args = append(args, opts.Image)

	command := opts.Command
	if command == "" {
		command = defaultKeepAlive
	}
	cmdArgs, err := shellquote.Split(command)
	if err != nil {
		return fmt.Errorf("invalid platform command %q: %w", command, err)
	}
	args = append(args, cmdArgs...)

	if _, err := e.runCmd(ctx, args...); err != nil {
		return err
	}

	if opts.Start {
		return e.Start(ctx, opts.Name)
	}

	return nil
}

// Start starts an existing instance
func (e *engine) Start(ctx context.Context, name string) error {
	containerName := e.containerName(name)
	logging.Debug("starting instance", "container", containerName)

	_, err := e.runCmd(ctx, "start", containerName)
	return err
}

// Stop stops a running instance
func (e *engine) Stop(ctx context.Context, name string) error {
	containerName := e.containerName(name)
	logging.Debug("stopping instance", "container", containerName)

	_, err := e.runCmd(ctx, "stop", containerName)
	return err
}

// Destroy stops and removes an instance
func (e *engine) Destroy(ctx context.Context, name string) error {
	containerName := e.containerName(name)
	logging.Debug("destroying instance", "container", containerName)

	// Stop first (ignore errors if already stopped)
	_, _ = e.runCmd(ctx, "stop", containerName)

	_, err := e.runCmd(ctx, "rm", "-f", containerName)
	if err != nil && isNoSuchContainer(err) {
		return nil
	}

	return err
}

// isNoSuchContainer reports whether an engine error means the container does
// not exist. Docker capitalizes the message, podman does not.
func isNoSuchContainer(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "No such container") ||
		strings.Contains(msg, "no such container")
}

// IsRunning checks if an instance is currently running
func (e *engine) IsRunning(ctx context.Context, name string) (bool, error) {
	containerName := e.containerName(name)

	output, err := e.runCmd(ctx, "inspect", "-f", "{{.State.Running}}", containerName)
	if err != nil {
		if isNoSuchContainer(err) {
			return false, nil
		}
		// Anything else (daemon down, binary missing) is a real failure
		return false, err
	}

	return strings.TrimSpace(output) == "true", nil
}

// engineInspect holds the relevant fields from inspect output
type engineInspect struct {
	State struct {
		Status    string `json:"Status"`
		Running   bool   `json:"Running"`
		StartedAt string `json:"StartedAt"`
	} `json:"State"`
	NetworkSettings struct {
		IPAddress string `json:"IPAddress"`
	} `json:"NetworkSettings"`
}

// Status returns detailed status of an instance
func (e *engine) Status(ctx context.Context, name string) (*InstanceInfo, error) {
	containerName := e.containerName(name)

	info := &InstanceInfo{
		Name:   name,
		Status: StatusNotFound,
	}

	output, err := e.runCmd(ctx, "inspect", containerName)
	if err != nil {
		return info, nil
	}

	var inspects []engineInspect
	if err := json.Unmarshal([]byte(output), &inspects); err != nil {
		return info, nil
	}

	if len(inspects) == 0 {
		return info, nil
	}

	inspect := inspects[0]
	switch inspect.State.Status {
	case "running":
		info.Status = StatusRunning
	case "exited", "stopped", "created":
		info.Status = StatusStopped
	default:
		info.Status = StatusUnknown
	}

	info.StartedAt = inspect.State.StartedAt
	info.IPAddress = inspect.NetworkSettings.IPAddress

	return info, nil
}

// execArgs builds the common exec argument list
func (e *engine) execArgs(containerName string, command []string, opts ExecOptions) []string {
	args := []string{"exec"}

	if opts.Interactive {
		args = append(args, "-it")
	}

	if opts.User != "" {
		args = append(args, "-u", opts.User)
	}

	if opts.WorkingDir != "" {
		args = append(args, "-w", opts.WorkingDir)
	}

	for _, env := range opts.Env {
		args = append(args, "-e", env)
	}

	args = append(args, containerName)
	args = append(args, command...)

	return args
}

// Exec executes a command inside an instance
func (e *engine) Exec(ctx context.Context, name string, command []string, opts ExecOptions) (*ExecResult, error) {
	containerName := e.containerName(name)
	args := e.execArgs(containerName, command, opts)

	output, err := e.executor.Execute(ctx, e.profile.Command, args...)

	result := &ExecResult{Stdout: string(output)}

	if err != nil {
		if code, ok := exitCode(err); ok {
			result.ExitCode = code
		} else {
			return result, fmt.Errorf("exec failed: %w", err)
		}
	}

	return result, nil
}

// ExecInteractive executes a command with an interactive TTY, replacing the
// current process
func (e *engine) ExecInteractive(ctx context.Context, name string, command []string, opts ExecOptions) error {
	containerName := e.containerName(name)

	if _, err := e.executor.LookPath(e.profile.Command); err != nil {
		return fmt.Errorf("%s not found: %w", e.profile.Command, err)
	}

	opts.Interactive = true
	args := e.execArgs(containerName, command, opts)

	return e.executor.ReplaceProcess(e.profile.Command, args...)
}

// List returns all instances managed by this driver
func (e *engine) List(ctx context.Context) ([]*InstanceInfo, error) {
	output, err := e.runCmd(ctx, "ps", "-a", "--format", "{{.Names}}", "--filter", fmt.Sprintf("name=%s", e.prefix))
	if err != nil {
		return nil, err
	}

	var instances []*InstanceInfo
	lines := strings.Split(strings.TrimSpace(output), "\n")

	for _, name := range lines {
		if name == "" {
			continue
		}

		instanceName := strings.TrimPrefix(name, e.prefix)

		info, _ := e.Status(ctx, instanceName)
		if info != nil {
			instances = append(instances, info)
		}
	}

	return instances, nil
}

// exitCode extracts the process exit code from an exec error.
func exitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

var _ Driver = (*engine)(nil)

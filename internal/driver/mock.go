package driver

import (
	"context"
	"fmt"
	"sync"
)

// MockDriver is a mock implementation of Driver for testing
type MockDriver struct {
	mu sync.RWMutex

	// Instances tracks the state of mock instances
	Instances map[string]*InstanceInfo

	// ExecResults maps instance names to predefined exec results
	ExecResults map[string]*ExecResult

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall

	// ConnectionVars configures AnsibleConnectionOptions; nil means the
	// capability is reported as unsupported.
	ConnectionVars map[string]string
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockDriver creates a new mock driver
func NewMockDriver() *MockDriver {
	return &MockDriver{
		Instances:   make(map[string]*InstanceInfo),
		ExecResults: make(map[string]*ExecResult),
		Errors:      make(map[string]error),
		CallLog:     make([]MockCall, 0),
	}
}

func (m *MockDriver) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockDriver) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// SetExecResult sets the result for exec operations on an instance
func (m *MockDriver) SetExecResult(name string, result *ExecResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExecResults[name] = result
}

// AddInstance adds an instance to the mock
func (m *MockDriver) AddInstance(name string, status InstanceStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Instances[name] = &InstanceInfo{
		Name:   name,
		Status: status,
	}
}

// GetCallsFor returns all calls for a specific method
func (m *MockDriver) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Name returns the driver identifier
func (m *MockDriver) Name() string {
	return "mock"
}

// LoginCmdTemplate returns a template with the standard placeholder set
func (m *MockDriver) LoginCmdTemplate() string {
	return "mock-engine exec -e COLUMNS={columns} -e LINES={lines} -ti {instance} sh"
}

// LoginOptions returns the instance variable for the login template
func (m *MockDriver) LoginOptions(instanceName string) map[string]string {
	return map[string]string{"instance": instanceName}
}

// AnsibleConnectionOptions returns the configured connection metadata
func (m *MockDriver) AnsibleConnectionOptions(instanceName string) ConnectionOptions {
	if m.ConnectionVars == nil {
		return Unsupported()
	}
	return ConnectionOptions{Supported: true, Vars: m.ConnectionVars}
}

// Create creates a new instance
func (m *MockDriver) Create(ctx context.Context, opts CreateOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Create", opts)

	if err, ok := m.Errors["Create"]; ok {
		return err
	}

	status := StatusStopped
	if opts.Start {
		status = StatusRunning
	}

	m.Instances[opts.Name] = &InstanceInfo{
		Name:   opts.Name,
		Status: status,
	}

	return nil
}

// Start starts an existing instance
func (m *MockDriver) Start(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Start", name)

	if err, ok := m.Errors["Start"]; ok {
		return err
	}

	if instance, ok := m.Instances[name]; ok {
		instance.Status = StatusRunning
		return nil
	}

	return fmt.Errorf("instance not found: %s", name)
}

// Stop stops a running instance
func (m *MockDriver) Stop(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop", name)

	if err, ok := m.Errors["Stop"]; ok {
		return err
	}

	if instance, ok := m.Instances[name]; ok {
		instance.Status = StatusStopped
		return nil
	}

	return fmt.Errorf("instance not found: %s", name)
}

// Destroy stops and removes an instance
func (m *MockDriver) Destroy(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Destroy", name)

	if err, ok := m.Errors["Destroy"]; ok {
		return err
	}

	delete(m.Instances, name)
	return nil
}

// IsRunning checks if an instance is currently running
func (m *MockDriver) IsRunning(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("IsRunning", name)

	if err, ok := m.Errors["IsRunning"]; ok {
		return false, err
	}

	if instance, ok := m.Instances[name]; ok {
		return instance.Status == StatusRunning, nil
	}

	return false, nil
}

// Status returns detailed status of an instance
func (m *MockDriver) Status(ctx context.Context, name string) (*InstanceInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Status", name)

	if err, ok := m.Errors["Status"]; ok {
		return nil, err
	}

	if instance, ok := m.Instances[name]; ok {
		return instance, nil
	}

	return &InstanceInfo{Name: name, Status: StatusNotFound}, nil
}

// Exec executes a command inside an instance
func (m *MockDriver) Exec(ctx context.Context, name string, command []string, opts ExecOptions) (*ExecResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Exec", name, command, opts)

	if err, ok := m.Errors["Exec"]; ok {
		return nil, err
	}

	if result, ok := m.ExecResults[name]; ok {
		return result, nil
	}

	return &ExecResult{ExitCode: 0, Stdout: ""}, nil
}

// ExecInteractive executes a command with an interactive TTY
func (m *MockDriver) ExecInteractive(ctx context.Context, name string, command []string, opts ExecOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ExecInteractive", name, command, opts)

	if err, ok := m.Errors["ExecInteractive"]; ok {
		return err
	}

	return nil
}

// List returns all instances known to the mock
func (m *MockDriver) List(ctx context.Context) ([]*InstanceInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("List")

	if err, ok := m.Errors["List"]; ok {
		return nil, err
	}

	var instances []*InstanceInfo
	for _, info := range m.Instances {
		instances = append(instances, info)
	}
	return instances, nil
}

var _ Driver = (*MockDriver)(nil)

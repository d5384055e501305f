package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emberworks/kiln-ctl/internal/app"
	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	TmpDir   string
	Paths    *config.Paths
	Driver   *driver.MockDriver
	Executor *system.MockExecutor
	App      *app.App
	cleanup  func()
}

// NewTestEnv creates a new test environment with a mock driver
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	paths := &config.Paths{
		StateDir:     filepath.Join(tmpDir, "state"),
		InstancesDir: filepath.Join(tmpDir, "state", "instances"),
	}

	for _, dir := range []string{paths.StateDir, paths.InstancesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	mockDriver := driver.NewMockDriver()
	mockExecutor := system.NewMockExecutor()

	testApp := app.New(
		app.WithPaths(paths),
		app.WithDriver(mockDriver),
		app.WithExecutor(mockExecutor),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:        t,
		TmpDir:   tmpDir,
		Paths:    paths,
		Driver:   mockDriver,
		Executor: mockExecutor,
		App:      testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}

	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the default app instance
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// WriteScenario writes a scenario file into the temp dir and returns its path
func (e *TestEnv) WriteScenario(content string) string {
	e.T.Helper()

	path := filepath.Join(e.TmpDir, config.DefaultScenarioFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write scenario file: %v", err)
	}
	return path
}

// AddInstance registers an instance with the mock driver and writes its
// metadata file
func (e *TestEnv) AddInstance(name, scenarioName, image string, status driver.InstanceStatus) *config.InstanceMetadata {
	e.T.Helper()

	e.Driver.AddInstance(name, status)

	metadata := &config.InstanceMetadata{
		Name:     name,
		Scenario: scenarioName,
		Driver:   e.Driver.Name(),
		Image:    image,
	}
	if err := config.SaveInstanceMetadata(e.Paths.InstancesDir, metadata); err != nil {
		e.T.Fatalf("Failed to save instance metadata: %v", err)
	}
	return metadata
}

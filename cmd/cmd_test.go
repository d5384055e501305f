package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/emberworks/kiln-ctl/internal/audit"
	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/errors"
	"github.com/emberworks/kiln-ctl/internal/testutil"
)

func executeCommand(args ...string) (string, string, error) {
	// Reset flag values before each test
	createScenarioFile = config.DefaultScenarioFile
	createDriver = ""
	destroyAll = false
	execUser = ""
	execWorkdir = ""
	execInteractive = false
	eventsJSON = false
	verbose = false
	jsonOutput = false

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

const testScenario = `name = "smoke"

[driver]
name = "mock"

[[platforms]]
name = "web1"
image = "ubuntu:24.04"

[[platforms]]
name = "db1"
image = "postgres:16"
`

func TestCreateCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.WriteScenario(testScenario)

	_, _, err := executeCommand("create", "--scenario", path)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, name := range []string{"web1", "db1"} {
		if !config.InstanceExists(env.Paths.InstancesDir, name) {
			t.Errorf("instance %s metadata should exist", name)
		}
		if !env.App.IsRunning(name) {
			t.Errorf("instance %s should be running", name)
		}
	}
}

func TestCreateCommand_DriverOverride(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.WriteScenario(strings.Replace(testScenario, `name = "mock"`, `name = "vagrant"`, 1))

	// Scenario names an unregistered driver; --driver rescues it
	_, _, err := executeCommand("create", "--scenario", path, "--driver", "mock")
	if err != nil {
		t.Fatalf("create with --driver failed: %v", err)
	}
	if !env.App.IsRunning("web1") {
		t.Error("web1 should be running")
	}
}

func TestCreateCommand_UnknownDriver(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.WriteScenario(strings.Replace(testScenario, `name = "mock"`, `name = "vagrant"`, 1))

	_, _, err := executeCommand("create", "--scenario", path)
	if err == nil {
		t.Fatal("expected unknown driver error")
	}
	if got := errors.GetExitCode(err); got != errors.ExitUnknownDriver {
		t.Errorf("exit code = %d, want %d", got, errors.ExitUnknownDriver)
	}
}

func TestCreateCommand_MissingScenario(t *testing.T) {
	testutil.NewTestEnv(t)

	_, _, err := executeCommand("create", "--scenario", "/nonexistent/kiln.toml")
	if err == nil {
		t.Fatal("expected missing scenario error")
	}
}

func TestDestroyCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)

	_, _, err := executeCommand("destroy", "web1")
	if err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	if config.InstanceExists(env.Paths.InstancesDir, "web1") {
		t.Error("metadata should be removed")
	}
	if _, ok := env.Driver.Instances["web1"]; ok {
		t.Error("container should be destroyed")
	}
}

func TestDestroyCommand_All(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)
	env.AddInstance("db1", "smoke", "postgres:16", driver.StatusStopped)

	_, _, err := executeCommand("destroy", "--all")
	if err != nil {
		t.Fatalf("destroy --all failed: %v", err)
	}

	remaining, err := config.ListInstances(env.Paths.InstancesDir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no instances, got %d", len(remaining))
	}
}

func TestDestroyCommand_NotFound(t *testing.T) {
	testutil.NewTestEnv(t)

	_, _, err := executeCommand("destroy", "ghost")
	if err == nil {
		t.Fatal("expected instance not found error")
	}
	if got := errors.GetExitCode(err); got != errors.ExitInstanceNotFound {
		t.Errorf("exit code = %d, want %d", got, errors.ExitInstanceNotFound)
	}
}

func TestStartStopCommands(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusStopped)

	_, _, err := executeCommand("start", "web1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !env.App.IsRunning("web1") {
		t.Error("web1 should be running after start")
	}

	_, _, err = executeCommand("stop", "web1")
	if err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if env.App.IsRunning("web1") {
		t.Error("web1 should be stopped after stop")
	}
}

func TestStopCommand_NotRunning(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusStopped)

	_, _, err := executeCommand("stop", "web1")
	if err == nil {
		t.Fatal("expected not running error")
	}
	if got := errors.GetExitCode(err); got != errors.ExitGeneralError {
		t.Errorf("exit code = %d, want %d", got, errors.ExitGeneralError)
	}
}

func TestExecCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)
	env.Driver.SetExecResult("web1", &driver.ExecResult{ExitCode: 0, Stdout: "ok\n"})

	_, _, err := executeCommand("exec", "web1", "--", "true")
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}

	calls := env.Driver.GetCallsFor("Exec")
	if len(calls) != 1 {
		t.Fatalf("expected 1 Exec call, got %d", len(calls))
	}
}

func TestExecCommand_EngineFailure(t *testing.T) {
	env := testutil.NewTestEnv(t)

	// Engine-backed driver over the mock executor: inspect says running,
	// but the exec command itself fails with a non-exit error
	env.App.Driver = driver.NewDockerDriver(driver.Options{Executor: env.Executor})
	metadata := &config.InstanceMetadata{Name: "web1", Scenario: "smoke", Driver: "docker", Image: "ubuntu:24.04"}
	if err := config.SaveInstanceMetadata(env.Paths.InstancesDir, metadata); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	env.Executor.SetOutput("docker inspect -f {{.State.Running}} web1", []byte("true\n"))
	env.Executor.DefaultErr = fmt.Errorf("cannot connect to the docker daemon")

	_, _, err := executeCommand("exec", "web1", "--", "echo", "hi")
	if err == nil {
		t.Fatal("exec must fail when the engine command cannot run")
	}
	if got := errors.GetExitCode(err); got != errors.ExitContainerFailed {
		t.Errorf("exit code = %d, want %d", got, errors.ExitContainerFailed)
	}
}

func TestExecCommand_MissingSeparator(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)

	_, _, err := executeCommand("exec", "web1")
	if err == nil {
		t.Fatal("expected usage error")
	}
	if got := errors.GetExitCode(err); got != errors.ExitGeneralError {
		t.Errorf("exit code = %d, want %d", got, errors.ExitGeneralError)
	}
}

func TestPsCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)

	_, _, err := executeCommand("ps")
	if err != nil {
		t.Fatalf("ps failed: %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)

	_, _, err := executeCommand("status", "web1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
}

func TestDriversCommand(t *testing.T) {
	testutil.NewTestEnv(t)

	_, _, err := executeCommand("drivers")
	if err != nil {
		t.Fatalf("drivers failed: %v", err)
	}
}

func TestInventoryCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.Driver.ConnectionVars = map[string]string{"ansible_connection": "docker"}
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)

	stdout, _, err := executeCommand("inventory")
	if err != nil {
		t.Fatalf("inventory failed: %v", err)
	}

	var doc struct {
		Meta struct {
			Hostvars map[string]map[string]string `json:"hostvars"`
		} `json:"_meta"`
		All struct {
			Hosts []string `json:"hosts"`
		} `json:"all"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("inventory output is not valid JSON: %v", err)
	}

	if len(doc.All.Hosts) != 1 || doc.All.Hosts[0] != "web1" {
		t.Errorf("hosts = %v, want [web1]", doc.All.Hosts)
	}
	if doc.Meta.Hostvars["web1"]["ansible_connection"] != "docker" {
		t.Errorf("hostvars = %v", doc.Meta.Hostvars["web1"])
	}
}

func TestEventsCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)

	if _, _, err := executeCommand("destroy", "web1"); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	if _, _, err := executeCommand("events", "web1"); err != nil {
		t.Fatalf("events failed: %v", err)
	}

	events, err := audit.NewLogger(env.Paths.StateDir).Events("web1")
	if err != nil {
		t.Fatalf("reading events failed: %v", err)
	}
	if len(events) != 1 || events[0].Type != audit.EventDestroy {
		t.Errorf("events = %v, want single destroy event", events)
	}
}

func TestInventoryCommand_Empty(t *testing.T) {
	testutil.NewTestEnv(t)

	stdout, _, err := executeCommand("inventory")
	if err != nil {
		t.Fatalf("inventory failed: %v", err)
	}
	if !strings.Contains(stdout, "hostvars") {
		t.Error("empty inventory should still contain the _meta skeleton")
	}
}

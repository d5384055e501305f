package app

import (
	"errors"
	"testing"

	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/system"
)

func noEngineExecutor() *system.MockExecutor {
	exec := system.NewMockExecutor()
	exec.Missing["docker"] = true
	exec.Missing["podman"] = true
	return exec
}

func TestNew(t *testing.T) {
	app := New(WithExecutor(noEngineExecutor()))

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.Paths == nil {
		t.Error("Paths should not be nil")
	}
	if app.Registry == nil {
		t.Error("Registry should not be nil")
	}
	// No engine binary on PATH, so no driver resolved
	if app.Driver != nil {
		t.Error("Driver should be nil when no engine is available")
	}
}

func TestNew_WithPaths(t *testing.T) {
	customPaths := &config.Paths{
		StateDir:     "/custom/state",
		InstancesDir: "/custom/state/instances",
	}

	app := New(WithPaths(customPaths), WithExecutor(noEngineExecutor()))

	if app.Paths != customPaths {
		t.Error("WithPaths did not set custom paths")
	}
}

func TestNew_WithDriver(t *testing.T) {
	mock := driver.NewMockDriver()

	app := New(WithDriver(mock))

	if app.Driver != mock {
		t.Error("WithDriver did not set driver")
	}
}

func TestNew_DetectsDriver(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.Missing["podman"] = true

	app := New(WithExecutor(exec))

	if app.Driver == nil {
		t.Fatal("Driver should be resolved when docker is on PATH")
	}
	if app.Driver.Name() != "docker" {
		t.Errorf("Driver.Name() = %q, want %q", app.Driver.Name(), "docker")
	}
}

func TestResolveDriver(t *testing.T) {
	mock := driver.NewMockDriver()
	app := New(WithDriver(mock))

	t.Run("empty name returns current driver", func(t *testing.T) {
		d, err := app.ResolveDriver("")
		if err != nil {
			t.Fatalf("ResolveDriver failed: %v", err)
		}
		if d != mock {
			t.Error("empty name should resolve to the app driver")
		}
	})

	t.Run("explicit name uses registry", func(t *testing.T) {
		d, err := app.ResolveDriver("podman")
		if err != nil {
			t.Fatalf("ResolveDriver failed: %v", err)
		}
		if d.Name() != "podman" {
			t.Errorf("Name() = %q, want %q", d.Name(), "podman")
		}
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := app.ResolveDriver("vagrant")
		if err == nil {
			t.Fatal("expected error for unknown driver")
		}
		var unknownErr *driver.UnknownDriverError
		if !errors.As(err, &unknownErr) {
			t.Errorf("expected UnknownDriverError, got %T", err)
		}
	})
}

func TestAppDriverHelpers(t *testing.T) {
	mock := driver.NewMockDriver()
	mock.AddInstance("web1", driver.StatusRunning)
	app := New(WithDriver(mock))

	if !app.IsRunning("web1") {
		t.Error("web1 should be running")
	}
	if app.IsRunning("missing") {
		t.Error("missing instance should not be running")
	}
	if got := app.Status("web1"); got != driver.StatusRunning {
		t.Errorf("Status = %v, want %v", got, driver.StatusRunning)
	}

	if err := app.Stop("web1"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if app.IsRunning("web1") {
		t.Error("web1 should be stopped after Stop")
	}

	if err := app.Destroy("web1"); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if _, ok := mock.Instances["web1"]; ok {
		t.Error("web1 should be removed after Destroy")
	}
}

func TestAppNilDriver(t *testing.T) {
	app := &App{}

	if app.IsRunning("web1") {
		t.Error("nil driver should report not running")
	}
	if got := app.Status("web1"); got != driver.StatusUnknown {
		t.Errorf("Status = %v, want %v", got, driver.StatusUnknown)
	}
	if err := app.Start("web1"); err != nil {
		t.Errorf("Start with nil driver should be a no-op, got %v", err)
	}
}

func TestSetDefault(t *testing.T) {
	original := Default
	defer SetDefault(original)

	custom := New(WithDriver(driver.NewMockDriver()))
	SetDefault(custom)

	if Default != custom {
		t.Error("SetDefault did not replace Default")
	}
}

package driver

import (
	"reflect"
	"testing"

	"github.com/emberworks/kiln-ctl/internal/system"
)

func TestDetect_PrefersPodman(t *testing.T) {
	executor := system.NewMockExecutor()

	name, err := Detect(executor)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if name != "podman" {
		t.Errorf("expected podman to be preferred, got %s", name)
	}
}

func TestDetect_FallsBackToDocker(t *testing.T) {
	executor := system.NewMockExecutor()
	executor.Missing["podman"] = true

	name, err := Detect(executor)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if name != "docker" {
		t.Errorf("expected docker fallback, got %s", name)
	}
}

func TestDetect_NoneAvailable(t *testing.T) {
	executor := system.NewMockExecutor()
	executor.Missing["podman"] = true
	executor.Missing["docker"] = true

	if _, err := Detect(executor); err == nil {
		t.Error("expected error when no engine is installed")
	}
}

func TestAvailable(t *testing.T) {
	executor := system.NewMockExecutor()
	executor.Missing["docker"] = true

	got := Available(executor)
	if !reflect.DeepEqual(got, []string{"podman"}) {
		t.Errorf("Available() = %v", got)
	}
}

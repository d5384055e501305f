package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInstanceName(t *testing.T) {
	valid := []string{"web1", "db", "a", "my-instance", "my_instance", "0box"}
	for _, name := range valid {
		if err := ValidateInstanceName(name); err != nil {
			t.Errorf("expected %q to be valid, got: %v", name, err)
		}
	}

	invalid := []string{"", "Web1", "-web", "_web", "web/1", "../evil", "web.1"}
	for _, name := range invalid {
		if err := ValidateInstanceName(name); err == nil {
			t.Errorf("expected %q to be invalid", name)
		}
	}

	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateInstanceName(string(long)); err == nil {
		t.Error("expected 64-char name to be invalid")
	}
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kiln.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name = "integration"

[driver]
name = "podman"

[[platforms]]
name = "web1"
image = "quay.io/centos/centos:stream9"
privileged = true
volumes = ["/sys/fs/cgroup:/sys/fs/cgroup:ro"]
published_ports = ["127.0.0.1:8053:53/udp"]

[[platforms]]
name = "db1"
image = "docker.io/library/postgres:16"

[platforms.env]
POSTGRES_PASSWORD = "secret"
`)

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	if scenario.Name != "integration" {
		t.Errorf("unexpected scenario name: %s", scenario.Name)
	}
	if scenario.Driver.Name != "podman" {
		t.Errorf("unexpected driver: %s", scenario.Driver.Name)
	}
	if len(scenario.Platforms) != 2 {
		t.Fatalf("expected 2 platforms, got %d", len(scenario.Platforms))
	}
	if !scenario.Platforms[0].Privileged {
		t.Error("expected web1 to be privileged")
	}
	if scenario.Platforms[1].Env["POSTGRES_PASSWORD"] != "secret" {
		t.Error("expected db1 env to be loaded")
	}
}

func TestLoadScenario_Defaults(t *testing.T) {
	path := writeScenario(t, `
[[platforms]]
name = "web1"
image = "alpine:3"
`)

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	if scenario.Name != "default" {
		t.Errorf("expected default scenario name, got %s", scenario.Name)
	}
	if scenario.Driver.Name != "docker" {
		t.Errorf("expected docker as default driver, got %s", scenario.Driver.Name)
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	cases := map[string]string{
		"no platforms": `name = "empty"`,
		"bad name": `
[[platforms]]
name = "Bad Name"
image = "alpine:3"
`,
		"duplicate names": `
[[platforms]]
name = "web1"
image = "alpine:3"

[[platforms]]
name = "web1"
image = "alpine:3"
`,
		"missing image": `
[[platforms]]
name = "web1"
`,
	}

	for label, content := range cases {
		t.Run(label, func(t *testing.T) {
			path := writeScenario(t, content)
			if _, err := LoadScenario(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestScenario_Platform(t *testing.T) {
	s := &Scenario{Platforms: []Platform{{Name: "web1"}, {Name: "db1"}}}

	if p := s.Platform("db1"); p == nil || p.Name != "db1" {
		t.Error("expected to find db1")
	}
	if p := s.Platform("nope"); p != nil {
		t.Error("expected nil for unknown platform")
	}
}

func TestInstanceMetadata_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	metadata := &InstanceMetadata{
		Name:      "web1",
		Scenario:  "default",
		Driver:    "podman",
		Image:     "alpine:3",
		CreatedAt: "2026-01-02T15:04:05Z",
	}

	if err := SaveInstanceMetadata(dir, metadata); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !InstanceExists(dir, "web1") {
		t.Error("expected instance to exist")
	}

	loaded, err := LoadInstanceMetadata(dir, "web1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Driver != "podman" || loaded.Image != "alpine:3" {
		t.Errorf("unexpected metadata: %+v", loaded)
	}
	if loaded.ContainerName() != "kiln-web1" {
		t.Errorf("unexpected container name: %s", loaded.ContainerName())
	}

	if err := DeleteInstanceMetadata(dir, "web1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if InstanceExists(dir, "web1") {
		t.Error("expected instance to be gone")
	}
}

func TestDeleteInstanceMetadata_Missing(t *testing.T) {
	if err := DeleteInstanceMetadata(t.TempDir(), "ghost"); err != nil {
		t.Errorf("deleting missing metadata should not fail: %v", err)
	}
}

func TestListInstances(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"web2", "web1", "db1"} {
		meta := &InstanceMetadata{Name: name, Scenario: "default", Driver: "docker", Image: "alpine:3"}
		if err := SaveInstanceMetadata(dir, meta); err != nil {
			t.Fatalf("save %s failed: %v", name, err)
		}
	}

	instances, err := ListInstances(dir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(instances) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(instances))
	}

	// Sorted by name
	if instances[0].Name != "db1" || instances[2].Name != "web2" {
		t.Errorf("instances not sorted: %v", []string{instances[0].Name, instances[1].Name, instances[2].Name})
	}
}

func TestListInstances_EmptyDir(t *testing.T) {
	instances, err := ListInstances(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instances) != 0 {
		t.Errorf("expected no instances, got %d", len(instances))
	}
}

func TestDefaultPaths_EnvOverride(t *testing.T) {
	t.Setenv("KILN_STATE_DIR", "/tmp/kiln-test-state")

	p := DefaultPaths()
	if p.StateDir != "/tmp/kiln-test-state" {
		t.Errorf("unexpected state dir: %s", p.StateDir)
	}
	if p.InstancesDir != filepath.Join("/tmp/kiln-test-state", "instances") {
		t.Errorf("unexpected instances dir: %s", p.InstancesDir)
	}
}

package driver

import (
	"reflect"
	"strings"
	"testing"

	"github.com/emberworks/kiln-ctl/internal/system"
)

func newPodman(t *testing.T) Driver {
	t.Helper()
	d, err := Default().Resolve("podman", Options{Executor: system.NewMockExecutor()})
	if err != nil {
		t.Fatalf("Resolve(podman) failed: %v", err)
	}
	return d
}

func TestPodman_LoginCmdTemplate(t *testing.T) {
	tmpl := newPodman(t).LoginCmdTemplate()

	if !strings.HasPrefix(tmpl, "podman exec") {
		t.Errorf("template should begin with 'podman exec', got %q", tmpl)
	}
	if !strings.Contains(tmpl, "-ti {instance} bash") {
		t.Errorf("template should contain '-ti {instance} bash', got %q", tmpl)
	}
	if !strings.Contains(tmpl, "-e TERM=xterm") {
		t.Errorf("template should set TERM=xterm, got %q", tmpl)
	}
	if strings.Contains(tmpl, "TERM=bash") {
		t.Errorf("template should not carry the dead TERM=bash assignment, got %q", tmpl)
	}
}

func TestPodman_LoginOptions(t *testing.T) {
	opts := newPodman(t).LoginOptions("web1")

	want := map[string]string{"instance": "web1"}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("LoginOptions = %v, want %v", opts, want)
	}
}

func TestPodman_LoginOptions_WithPrefix(t *testing.T) {
	d, err := Default().Resolve("podman", Options{
		Executor:        system.NewMockExecutor(),
		ContainerPrefix: "kiln-",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	opts := d.LoginOptions("web1")
	if opts["instance"] != "kiln-web1" {
		t.Errorf("expected prefixed container name, got %v", opts)
	}
}

func TestPodman_AnsibleConnectionOptions(t *testing.T) {
	conn := newPodman(t).AnsibleConnectionOptions("web1")

	if conn.Supported {
		t.Error("podman connection metadata should be reported unsupported")
	}
	if len(conn.Vars) != 0 {
		t.Errorf("expected no connection vars, got %v", conn.Vars)
	}
}

// Rendering any registered template with LoginOptions plus terminal geometry
// must leave no unresolved placeholders.
func TestLoginRoundTrip(t *testing.T) {
	for _, name := range Default().Names() {
		t.Run(name, func(t *testing.T) {
			d, err := Default().Resolve(name, Options{Executor: system.NewMockExecutor()})
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			for _, instance := range []string{"web1", "a", "my-long_instance-name"} {
				vars := d.LoginOptions(instance)
				vars["columns"] = "132"
				vars["lines"] = "43"

				rendered, err := RenderTemplate(d.LoginCmdTemplate(), vars)
				if err != nil {
					t.Fatalf("render failed for %q: %v", instance, err)
				}
				if strings.ContainsAny(rendered, "{}") {
					t.Errorf("unresolved placeholders remain: %q", rendered)
				}
				if !strings.Contains(rendered, instance) {
					t.Errorf("instance name missing from %q", rendered)
				}
			}
		})
	}
}

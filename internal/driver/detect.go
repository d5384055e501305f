package driver

import (
	"fmt"
	"strings"

	"github.com/emberworks/kiln-ctl/internal/logging"
	"github.com/emberworks/kiln-ctl/internal/system"
)

// detectionOrder is the preference order for auto-detection. Podman first:
// rootless operation needs no daemon socket.
var detectionOrder = []string{"podman", "docker"}

// Detect determines which registered driver has a usable engine binary on
// this system.
func Detect(executor system.CommandExecutor) (string, error) {
	if executor == nil {
		executor = system.DefaultExecutor()
	}

	for _, name := range detectionOrder {
		if _, err := executor.LookPath(name); err == nil {
			logging.Debug("detected container engine", "driver", name)
			return name, nil
		}
	}

	return "", fmt.Errorf("no supported container engine found (tried: %s)",
		strings.Join(detectionOrder, ", "))
}

// Available returns the drivers whose engine binaries are present, in
// detection preference order.
func Available(executor system.CommandExecutor) []string {
	if executor == nil {
		executor = system.DefaultExecutor()
	}

	var available []string
	for _, name := range detectionOrder {
		if _, err := executor.LookPath(name); err == nil {
			available = append(available, name)
		}
	}
	return available
}

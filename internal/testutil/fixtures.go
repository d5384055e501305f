package testutil

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/emberworks/kiln-ctl/internal/config"
)

//go:embed fixtures/*.toml
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadScenarioFixture materializes a scenario fixture to disk and parses it.
func LoadScenarioFixture(t *testing.T, name string) (*config.Scenario, error) {
	t.Helper()

	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(t.TempDir(), config.DefaultScenarioFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}
	return config.LoadScenario(path)
}

// ValidScenario returns the valid scenario fixture.
func ValidScenario(t *testing.T) (*config.Scenario, error) {
	t.Helper()
	return LoadScenarioFixture(t, "valid_scenario.toml")
}

// InvalidScenario returns the scenario fixture with duplicate platforms.
func InvalidScenario(t *testing.T) (*config.Scenario, error) {
	t.Helper()
	return LoadScenarioFixture(t, "invalid_scenario.toml")
}

// Package testutil provides test fixtures and utilities.
//
// This package contains embedded TOML scenario fixtures and a TestEnv helper
// that wires a MockDriver-backed app into a temp state directory.
//
// # Fixtures
//
// Scenario fixtures are embedded using go:embed:
//
//	fixtures/valid_scenario.toml
//	fixtures/invalid_scenario.toml
//
// # Loading Fixtures
//
//	scenario, err := testutil.ValidScenario(t)
//	_, err = testutil.InvalidScenario(t) // fails validation
//
// # Test Environment
//
//	func TestSomething(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    env.AddInstance("web1", "smoke", "ubuntu:24.04", driver.StatusRunning)
//	    // commands now operate against the mock driver
//	}
package testutil

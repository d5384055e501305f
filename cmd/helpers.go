package cmd

import (
	"github.com/emberworks/kiln-ctl/internal/app"
	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/errors"
)

// paths returns the default paths configuration.
// This is a helper to reduce repetition in commands.
func paths() *config.Paths {
	return app.Default.Paths
}

// getDriver returns the application driver.
func getDriver() driver.Driver {
	return app.Default.Driver
}

// isRunning checks if an instance is running using the app's driver.
func isRunning(name string) bool {
	return app.Default.IsRunning(name)
}

// loadInstance loads instance metadata or returns an InstanceNotFound error.
func loadInstance(name string) (*config.InstanceMetadata, error) {
	p := paths()
	metadata, err := config.LoadInstanceMetadata(p.InstancesDir, name)
	if err != nil {
		return nil, errors.InstanceNotFound(name)
	}
	return metadata, nil
}

// loadRunningInstance loads instance metadata and verifies it's running.
// Returns InstanceNotFound if the instance doesn't exist,
// or InstanceNotRunning if it exists but isn't running.
func loadRunningInstance(name string) (*config.InstanceMetadata, error) {
	metadata, err := loadInstance(name)
	if err != nil {
		return nil, err
	}

	if !isRunning(name) {
		return nil, errors.InstanceNotRunning(name)
	}

	return metadata, nil
}

// listInstances lists all instance metadata.
func listInstances() ([]*config.InstanceMetadata, error) {
	return config.ListInstances(paths().InstancesDir)
}

// resolveInstanceDriver resolves the driver recorded in instance metadata.
func resolveInstanceDriver(metadata *config.InstanceMetadata) (driver.Driver, error) {
	d, err := app.Default.ResolveDriver(metadata.Driver)
	if err != nil {
		return nil, errors.UnknownDriver(err)
	}
	return d, nil
}

// loadScenarioFile loads the scenario file named by the --scenario flag.
func loadScenarioFile(path string) (*config.Scenario, error) {
	scenario, err := config.LoadScenario(path)
	if err != nil {
		return nil, errors.ConfigError("failed to load scenario", err)
	}
	return scenario, nil
}

// resolveScenarioDriver resolves the driver a scenario asks for.
func resolveScenarioDriver(scenario *config.Scenario) (driver.Driver, error) {
	d, err := app.Default.ResolveDriver(scenario.Driver.Name)
	if err != nil {
		return nil, errors.UnknownDriver(err)
	}
	return d, nil
}

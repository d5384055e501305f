package app

import (
	"context"

	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/logging"
	"github.com/emberworks/kiln-ctl/internal/system"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Driver is the infrastructure driver
	Driver driver.Driver

	// Registry resolves driver names to drivers
	Registry *driver.Registry

	// Executor runs external commands
	Executor system.CommandExecutor
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithDriver sets a custom driver
func WithDriver(d driver.Driver) Option {
	return func(a *App) {
		a.Driver = d
	}
}

// WithRegistry sets a custom driver registry
func WithRegistry(r *driver.Registry) Option {
	return func(a *App) {
		a.Registry = r
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(executor system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = executor
	}
}

// New creates a new App with the given options.
// If a driver is not provided via WithDriver, it will be auto-detected.
func New(opts ...Option) *App {
	app := &App{
		Paths:    config.DefaultPaths(),
		Registry: driver.Default(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}

	// Initialize driver if not provided
	if app.Driver == nil {
		name, err := driver.Detect(app.Executor)
		if err != nil {
			logging.Debug("failed to detect driver", "error", err)
		} else {
			d, err := app.Registry.Resolve(name, driver.Options{
				Executor:        app.Executor,
				ContainerPrefix: config.ContainerPrefix,
			})
			if err != nil {
				logging.Debug("failed to resolve driver", "name", name, "error", err)
			} else {
				app.Driver = d
			}
		}
	}

	return app
}

// ResolveDriver resolves a driver by name using the app's registry.
// An empty name, or the name of the already-resolved driver, returns the
// app's current driver.
func (a *App) ResolveDriver(name string) (driver.Driver, error) {
	if a.Driver != nil && (name == "" || name == a.Driver.Name()) {
		return a.Driver, nil
	}
	return a.Registry.Resolve(name, driver.Options{
		Executor:        a.Executor,
		ContainerPrefix: config.ContainerPrefix,
	})
}

// IsRunning checks if an instance is running using the app's driver
func (a *App) IsRunning(name string) bool {
	if a.Driver == nil {
		return false
	}
	running, _ := a.Driver.IsRunning(context.Background(), name)
	return running
}

// Status reports the instance status using the app's driver
func (a *App) Status(name string) driver.InstanceStatus {
	if a.Driver == nil {
		return driver.StatusUnknown
	}
	info, err := a.Driver.Status(context.Background(), name)
	if err != nil || info == nil {
		return driver.StatusUnknown
	}
	return info.Status
}

// Start starts an instance using the app's driver
func (a *App) Start(name string) error {
	if a.Driver == nil {
		return nil
	}
	return a.Driver.Start(context.Background(), name)
}

// Stop stops an instance using the app's driver
func (a *App) Stop(name string) error {
	if a.Driver == nil {
		return nil
	}
	return a.Driver.Stop(context.Background(), name)
}

// Destroy destroys an instance using the app's driver
func (a *App) Destroy(name string) error {
	if a.Driver == nil {
		return nil
	}
	return a.Driver.Destroy(context.Background(), name)
}

// Create creates an instance using the app's driver
func (a *App) Create(opts driver.CreateOptions) error {
	if a.Driver == nil {
		return nil
	}
	return a.Driver.Create(context.Background(), opts)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}

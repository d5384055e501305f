package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/errors"
	"github.com/emberworks/kiln-ctl/internal/logging"
)

// Creator turns scenario platforms into running instances.
type Creator struct {
	paths  *config.Paths
	driver driver.Driver
}

// NewCreator creates a Creator using the given paths and driver.
func NewCreator(paths *config.Paths, d driver.Driver) *Creator {
	return &Creator{paths: paths, driver: d}
}

// createOptions maps a scenario platform to driver create options. Platform
// fields pass through unmodified; registry credentials are not handled here.
func createOptions(p *config.Platform) driver.CreateOptions {
	return driver.CreateOptions{
		Name:           p.Name,
		Image:          p.Image,
		Command:        p.Command,
		Privileged:     p.Privileged,
		Pull:           p.Pull,
		Env:            p.Env,
		Volumes:        p.Volumes,
		PublishedPorts: p.PublishedPorts,
		Networks:       p.Networks,
		Start:          true,
	}
}

// CreateAll creates and starts every platform in the scenario. Platforms
// that already have an instance are left alone. On failure the partially
// created instance is cleaned up and the error returned; instances created
// by earlier iterations stay up.
func (c *Creator) CreateAll(ctx context.Context, scenario *config.Scenario) ([]*config.InstanceMetadata, error) {
	var created []*config.InstanceMetadata

	for i := range scenario.Platforms {
		platform := &scenario.Platforms[i]

		if config.InstanceExists(c.paths.InstancesDir, platform.Name) {
			logging.Debug("instance already exists, skipping", "name", platform.Name)
			continue
		}

		metadata, err := c.createOne(ctx, scenario, platform)
		if err != nil {
			return created, err
		}
		created = append(created, metadata)
	}

	return created, nil
}

func (c *Creator) createOne(ctx context.Context, scenario *config.Scenario, platform *config.Platform) (*config.InstanceMetadata, error) {
	logging.Debug("creating instance", "name", platform.Name, "driver", c.driver.Name(), "image", platform.Image)

	if err := c.driver.Create(ctx, createOptions(platform)); err != nil {
		// Remove whatever the engine managed to set up
		_ = c.driver.Destroy(ctx, platform.Name)
		return nil, errors.ContainerFailed("create", err)
	}

	metadata := &config.InstanceMetadata{
		Name:      platform.Name,
		Scenario:  scenario.Name,
		Driver:    c.driver.Name(),
		Image:     platform.Image,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	if err := config.SaveInstanceMetadata(c.paths.InstancesDir, metadata); err != nil {
		_ = c.driver.Destroy(ctx, platform.Name)
		return nil, fmt.Errorf("failed to record instance %s: %w", platform.Name, err)
	}

	return metadata, nil
}

package scenario

import (
	"context"

	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/errors"
	"github.com/emberworks/kiln-ctl/internal/logging"
)

// Cleanup destroys an instance and removes its metadata. Metadata is
// removed even when the container is already gone, so half-destroyed
// instances do not wedge the state dir.
func Cleanup(ctx context.Context, d driver.Driver, paths *config.Paths, name string) error {
	logging.Debug("cleaning up instance", "name", name, "driver", d.Name())

	destroyErr := d.Destroy(ctx, name)
	if destroyErr != nil {
		logging.Warn("failed to destroy container", "name", name, "error", destroyErr)
	}

	if err := config.DeleteInstanceMetadata(paths.InstancesDir, name); err != nil {
		return err
	}

	if destroyErr != nil {
		return errors.ContainerFailed("destroy", destroyErr)
	}

	return nil
}

// CleanupAll destroys every known instance, continuing past individual
// failures and returning the first error seen.
func CleanupAll(ctx context.Context, d driver.Driver, paths *config.Paths, instances []*config.InstanceMetadata) error {
	var firstErr error

	for _, instance := range instances {
		if err := Cleanup(ctx, d, paths, instance.Name); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/audit"
	"github.com/emberworks/kiln-ctl/internal/logging"
	"github.com/emberworks/kiln-ctl/internal/scenario"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy [name...]",
	Short: "Destroy instances and their state",
	Long: `Destroys the named instances, or every known instance with --all.

Instance metadata is removed even when the container cannot be destroyed,
so a wedged engine does not leave stale state behind.`,
	RunE: runDestroy,
}

var destroyAll bool

func init() {
	destroyCmd.Flags().BoolVar(&destroyAll, "all", false, "Destroy all instances")
	rootCmd.AddCommand(destroyCmd)
}

func runDestroy(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if destroyAll {
		instances, err := listInstances()
		if err != nil {
			return err
		}
		if len(instances) == 0 {
			logInfo("No instances to destroy")
			return nil
		}

		// Instances may span drivers; group per recorded driver
		var firstErr error
		for _, inst := range instances {
			if err := destroyOne(ctx, inst.Name); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	if len(args) == 0 {
		logInfo("Nothing to destroy. Name instances or pass --all")
		return nil
	}

	for _, name := range args {
		if err := destroyOne(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func destroyOne(ctx context.Context, name string) error {
	metadata, err := loadInstance(name)
	if err != nil {
		return err
	}

	d, err := resolveInstanceDriver(metadata)
	if err != nil {
		return err
	}

	logging.Debug("destroying instance", "name", name, "driver", d.Name())

	auditLog := audit.NewLogger(paths().StateDir)

	if err := scenario.Cleanup(ctx, d, paths(), name); err != nil {
		_ = auditLog.LogEvent(audit.EventError, name, err.Error())
		logWarning("Instance %s: %v", name, err)
		return err
	}

	_ = auditLog.LogEvent(audit.EventDestroy, name, "")
	logSuccess("Destroyed instance %s", name)
	return nil
}

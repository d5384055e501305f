package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/audit"
	"github.com/emberworks/kiln-ctl/internal/errors"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a stopped instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	name := args[0]

	metadata, err := loadInstance(name)
	if err != nil {
		return err
	}

	d, err := resolveInstanceDriver(metadata)
	if err != nil {
		return err
	}

	if running, _ := d.IsRunning(context.Background(), name); running {
		logInfo("Instance %s is already running", name)
		return nil
	}

	if err := d.Start(context.Background(), name); err != nil {
		return errors.ContainerFailed("start", err)
	}

	auditLog := audit.NewLogger(paths().StateDir)
	_ = auditLog.LogEvent(audit.EventStart, name, "")

	logSuccess("Started instance %s", name)
	return nil
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/audit"
	"github.com/emberworks/kiln-ctl/internal/errors"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop a running instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	name := args[0]

	metadata, err := loadRunningInstance(name)
	if err != nil {
		return err
	}

	d, err := resolveInstanceDriver(metadata)
	if err != nil {
		return err
	}

	logInfo("Stopping instance %s...", name)

	if err := d.Stop(context.Background(), name); err != nil {
		return errors.ContainerFailed("stop", err)
	}

	auditLog := audit.NewLogger(paths().StateDir)
	_ = auditLog.LogEvent(audit.EventStop, name, "")

	logSuccess("Stopped instance %s", name)
	return nil
}

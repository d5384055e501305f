package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/app"
	"github.com/emberworks/kiln-ctl/internal/audit"
	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/logging"
	"github.com/emberworks/kiln-ctl/internal/login"
	"github.com/emberworks/kiln-ctl/internal/scenario"
	"github.com/emberworks/kiln-ctl/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Open an interactive shell into an instance",
	Long: `Opens an interactive shell into a running instance.

Without a name, an interactive picker lists the known instances.
The shell command comes from the driver's login template, with the
current terminal geometry filled in.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	var metadata *config.InstanceMetadata

	if len(args) == 1 {
		m, err := loadRunningInstance(args[0])
		if err != nil {
			return err
		}
		metadata = m
	} else {
		m, err := pickInstance()
		if err != nil || m == nil {
			return err
		}
		metadata = m
	}

	d, err := resolveInstanceDriver(metadata)
	if err != nil {
		return err
	}

	logging.Debug("logging into instance", "name", metadata.Name, "driver", d.Name())

	// Logged before Run because Run replaces the process on success
	auditLog := audit.NewLogger(paths().StateDir)
	_ = auditLog.LogEvent(audit.EventLogin, metadata.Name, "")

	session := login.New(d, app.Default.Executor)
	return session.Run(metadata.Name)
}

// pickInstance runs the interactive picker and handles non-login actions.
// A nil metadata with nil error means there is nothing left to do.
func pickInstance() (*config.InstanceMetadata, error) {
	instances, err := listInstances()
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	if len(instances) == 0 {
		logInfo("No instances found. Create some with: kiln-ctl create")
		return nil, nil
	}

	result, err := tui.RunPicker(instances, app.Default.Status)
	if err != nil {
		return nil, fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionLogin:
		if result.Instance != nil {
			// Re-check through the usual path so a stopped instance
			// gets the standard error
			return loadRunningInstance(result.Instance.Name)
		}

	case tui.ActionDestroy:
		if result.Instance != nil {
			d, err := resolveInstanceDriver(result.Instance)
			if err != nil {
				return nil, err
			}
			if err := scenario.Cleanup(context.Background(), d, paths(), result.Instance.Name); err != nil {
				return nil, err
			}
			logSuccess("Destroyed instance %s", result.Instance.Name)
		}

	case tui.ActionQuit:
		// Just exit cleanly
	}

	return nil, nil
}

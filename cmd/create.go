package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/audit"
	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/logging"
	"github.com/emberworks/kiln-ctl/internal/scenario"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the instances a scenario declares",
	Long: `Reads the scenario file and creates one container instance per platform.

Instances that already exist are skipped, so create is safe to re-run
after a partial failure.`,
	RunE: runCreate,
}

var (
	createScenarioFile string
	createDriver       string
)

func init() {
	createCmd.Flags().StringVarP(&createScenarioFile, "scenario", "s", config.DefaultScenarioFile, "Scenario file to load")
	createCmd.Flags().StringVarP(&createDriver, "driver", "d", "", "Override the scenario's driver")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	sc, err := loadScenarioFile(createScenarioFile)
	if err != nil {
		return err
	}

	if createDriver != "" {
		sc.Driver.Name = createDriver
	}

	d, err := resolveScenarioDriver(sc)
	if err != nil {
		return err
	}

	logging.Debug("creating scenario", "scenario", sc.Name, "driver", d.Name(), "platforms", len(sc.Platforms))
	logInfo("Creating scenario %s (%d platforms, driver %s)...", sc.Name, len(sc.Platforms), d.Name())

	creator := scenario.NewCreator(paths(), d)
	created, err := creator.CreateAll(ctx, sc)
	if err != nil {
		return err
	}

	auditLog := audit.NewLogger(paths().StateDir)
	for _, inst := range created {
		_ = auditLog.LogEvent(audit.EventCreate, inst.Name, inst.Image)
		logSuccess("Instance %s created (%s)", inst.Name, inst.Image)
	}
	if len(created) == 0 {
		logInfo("All instances already exist")
	}

	return nil
}

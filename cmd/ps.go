package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/app"
	"github.com/emberworks/kiln-ctl/internal/driver"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List all instances",
	RunE:  runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
}

func runPs(cmd *cobra.Command, args []string) error {
	instances, err := listInstances()
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	if len(instances) == 0 {
		logInfo("No instances found. Create some with: kiln-ctl create")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCENARIO\tDRIVER\tIMAGE\tSTATUS")
	fmt.Fprintln(w, "----\t--------\t------\t-----\t------")

	for _, inst := range instances {
		status := formatStatus(app.Default.Status(inst.Name))
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			inst.Name, inst.Scenario, inst.Driver, inst.Image, status)
	}

	return w.Flush()
}

func formatStatus(status driver.InstanceStatus) string {
	switch status {
	case driver.StatusRunning:
		return "✓ running"
	case driver.StatusStopped:
		return "● stopped"
	case driver.StatusNotFound:
		return "✗ missing"
	default:
		return string(status)
	}
}

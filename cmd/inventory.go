package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/app"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/inventory"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Emit an Ansible dynamic inventory for known instances",
	Long: `Prints a JSON dynamic inventory covering every known instance.

Hostvars come from each instance's driver. Drivers without a connection
plugin contribute hosts with empty hostvars; provisioning against those
needs a delegated connection.`,
	RunE: runInventory,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
}

func runInventory(cmd *cobra.Command, args []string) error {
	instances, err := listInstances()
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	data, err := inventory.Render(instances, func(name string) (driver.Driver, error) {
		return app.Default.ResolveDriver(name)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

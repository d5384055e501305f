package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/app"
	"github.com/emberworks/kiln-ctl/internal/driver"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "Show infrastructure driver information",
	Long: `Display information about registered and available drivers.

kiln-ctl supports multiple container backends:
  - docker:  Docker Engine
  - podman:  Podman (rootless containers)

The driver is auto-detected based on what's available on your system;
a scenario file can pin one explicitly.`,
	RunE: runDrivers,
}

func init() {
	rootCmd.AddCommand(driversCmd)
}

func runDrivers(cmd *cobra.Command, args []string) error {
	executor := app.Default.Executor

	// Detect current driver
	detected, err := driver.Detect(executor)
	if err != nil {
		fmt.Printf("Detection failed: %s\n", err)
	} else {
		fmt.Printf("Active driver: %s\n", detected)
	}

	fmt.Println()

	// List drivers with an engine binary on PATH
	available := driver.Available(executor)
	fmt.Println("Available drivers:")
	if len(available) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, name := range available {
			marker := "  "
			if name == detected {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, name)
		}
	}

	fmt.Println()

	// All registered drivers, whether or not usable here
	fmt.Println("Registered drivers:")
	for _, name := range app.Default.Registry.Names() {
		fmt.Printf("  %s\n", name)
	}

	return nil
}

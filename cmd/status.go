package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show detailed status of an instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	name := args[0]

	metadata, err := loadInstance(name)
	if err != nil {
		return err
	}

	d, err := resolveInstanceDriver(metadata)
	if err != nil {
		return err
	}

	fmt.Printf("Instance: %s\n", metadata.Name)
	fmt.Printf("Scenario: %s\n", metadata.Scenario)
	fmt.Printf("Driver: %s\n", metadata.Driver)
	fmt.Printf("Image: %s\n", metadata.Image)
	fmt.Printf("Created: %s\n", metadata.CreatedAt)
	fmt.Println()

	info, err := d.Status(context.Background(), name)
	if err != nil || info == nil {
		fmt.Println("Container: ✗ unavailable")
		return nil
	}

	fmt.Printf("Container: %s\n", formatStatus(info.Status))
	if info.StartedAt != "" {
		fmt.Printf("Started: %s\n", info.StartedAt)
	}
	if info.IPAddress != "" {
		fmt.Printf("IP: %s\n", info.IPAddress)
	}

	conn := d.AnsibleConnectionOptions(name)
	if conn.Supported {
		fmt.Println("Connection vars:")
		for k, v := range conn.Vars {
			fmt.Printf("  %s: %s\n", k, v)
		}
	} else {
		fmt.Println("Connection vars: (driver has no connection plugin)")
	}

	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/audit"
)

var eventsCmd = &cobra.Command{
	Use:   "events <name>",
	Short: "Display the lifecycle event trail for an instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

var eventsJSON bool

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "Output events as JSON lines")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	name := args[0]

	auditLogger := audit.NewLogger(paths().StateDir)
	events, err := auditLogger.Events(name)
	if err != nil {
		return fmt.Errorf("failed to read event log: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events found for instance %s", name)
		return nil
	}

	for _, e := range events {
		if eventsJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Println(string(data))
		} else {
			ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
			if e.Details != "" {
				fmt.Printf("[%s] %-8s %s (%s)\n", ts, e.Type, e.Instance, e.Details)
			} else {
				fmt.Printf("[%s] %-8s %s\n", ts, e.Type, e.Instance)
			}
		}
	}

	return nil
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "kiln-ctl",
	Short: "Kiln test-instance lifecycle manager",
	Long: `kiln-ctl manages ephemeral container instances for infrastructure testing.

A scenario file (kiln.toml) declares the platforms to create; a pluggable
driver (docker or podman) turns those declarations into containers:
  - Create and destroy whole scenarios in one command
  - Log into instances with driver-specific shell templates
  - Emit an Ansible dynamic inventory for provisioning`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/errors"
)

var execCmd = &cobra.Command{
	Use:   "exec <name> -- <command>",
	Short: "Execute a command in an instance",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExec,
}

var (
	execUser        string
	execWorkdir     string
	execInteractive bool
)

func init() {
	execCmd.Flags().StringVarP(&execUser, "user", "u", "", "User to run the command as")
	execCmd.Flags().StringVarP(&execWorkdir, "workdir", "w", "", "Working directory inside the instance")
	execCmd.Flags().BoolVarP(&execInteractive, "interactive", "i", false, "Allocate a TTY and replace the current process")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	name := args[0]

	metadata, err := loadRunningInstance(name)
	if err != nil {
		return err
	}

	// Find the command to execute (everything after --)
	var command []string
	if lenAt := cmd.ArgsLenAtDash(); lenAt >= 1 && lenAt < len(args) {
		command = args[lenAt:]
	}
	if len(command) == 0 {
		return errors.ValidationError("usage: kiln-ctl exec <name> -- <command>")
	}

	d, err := resolveInstanceDriver(metadata)
	if err != nil {
		return err
	}

	ctx := context.Background()
	opts := driver.ExecOptions{
		User:        execUser,
		WorkingDir:  execWorkdir,
		Interactive: execInteractive,
	}

	if execInteractive {
		return d.ExecInteractive(ctx, name, command, opts)
	}

	// A non-zero exit status arrives as a result with err == nil; err here
	// means the engine command itself failed to run
	result, err := d.Exec(ctx, name, command, opts)
	if err != nil {
		return errors.ContainerFailed("exec", err)
	}

	fmt.Print(result.Stdout)

	if result.ExitCode != 0 {
		return errors.New(result.ExitCode, fmt.Sprintf("command exited with status %d", result.ExitCode))
	}
	return nil
}

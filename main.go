package main

import (
	"os"

	"github.com/emberworks/kiln-ctl/cmd"
	"github.com/emberworks/kiln-ctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}

// Package login assembles and executes interactive login shells for
// instances. The driver supplies the command template and the instance
// variable; this package contributes terminal geometry, renders the
// template, and hands the result to the OS.
package login

import (
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/errors"
	"github.com/emberworks/kiln-ctl/internal/logging"
	"github.com/emberworks/kiln-ctl/internal/system"
)

// Geometry is the terminal size passed into login command templates.
type Geometry struct {
	Columns int
	Lines   int
}

// DetectGeometry determines the current terminal size. It asks the terminal
// first, falls back to the COLUMNS/LINES environment variables, and finally
// to 80x24.
func DetectGeometry() Geometry {
	geo := Geometry{Columns: 80, Lines: 24}

	if cols, lines, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 && lines > 0 {
		geo.Columns = cols
		geo.Lines = lines
		return geo
	}

	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		geo.Columns = cols
	}
	if lines, err := strconv.Atoi(os.Getenv("LINES")); err == nil && lines > 0 {
		geo.Lines = lines
	}

	return geo
}

// Session opens login shells via a driver.
type Session struct {
	driver   driver.Driver
	executor system.CommandExecutor
}

// New creates a login session for a driver. A nil executor selects the real
// OS executor.
func New(d driver.Driver, executor system.CommandExecutor) *Session {
	if executor == nil {
		executor = system.DefaultExecutor()
	}
	return &Session{driver: d, executor: executor}
}

// Argv builds the full login command for an instance at the given terminal
// geometry.
func (s *Session) Argv(instanceName string, geo Geometry) ([]string, error) {
	vars := s.driver.LoginOptions(instanceName)
	vars["columns"] = strconv.Itoa(geo.Columns)
	vars["lines"] = strconv.Itoa(geo.Lines)

	argv, err := driver.LoginArgv(s.driver.LoginCmdTemplate(), vars)
	if err != nil {
		return nil, errors.LoginError("failed to build login command", err)
	}

	return argv, nil
}

// Run opens a login shell into the instance, replacing the current process.
func (s *Session) Run(instanceName string) error {
	argv, err := s.Argv(instanceName, DetectGeometry())
	if err != nil {
		return err
	}

	logging.Debug("opening login shell", "instance", instanceName, "argv", argv)

	if err := s.executor.ReplaceProcess(argv[0], argv[1:]...); err != nil {
		return errors.LoginError("failed to exec login shell", err)
	}

	return nil
}

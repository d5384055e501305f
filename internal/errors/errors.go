package errors

import (
	"errors"
	"fmt"
)

// Exit codes for kiln-ctl
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitInstanceNotFound = 2
	ExitScenarioNotFound = 3
	ExitUnknownDriver    = 4
	ExitContainerFailed  = 5
	ExitConfigError      = 6
	ExitLoginError       = 7
)

// KilnError is the base error type for kiln-ctl
type KilnError struct {
	Code    int
	Message string
	Cause   error
}

func (e *KilnError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *KilnError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *KilnError) ExitCode() int {
	return e.Code
}

// New creates a new KilnError
func New(code int, message string) *KilnError {
	return &KilnError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a KilnError
func Wrap(code int, message string, cause error) *KilnError {
	return &KilnError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// InstanceNotFound returns an error for a missing instance
func InstanceNotFound(name string) *KilnError {
	return New(ExitInstanceNotFound, fmt.Sprintf("instance not found: %s", name))
}

// InstanceNotRunning returns an error when an instance exists but is not running
func InstanceNotRunning(name string) *KilnError {
	return New(ExitGeneralError, fmt.Sprintf("instance %s is not running", name))
}

// ScenarioNotFound returns an error for a missing scenario file
func ScenarioNotFound(path string) *KilnError {
	return New(ExitScenarioNotFound, fmt.Sprintf("scenario not found: %s", path))
}

// UnknownDriver wraps a driver resolution failure
func UnknownDriver(cause error) *KilnError {
	return Wrap(ExitUnknownDriver, "driver selection failed", cause)
}

// ContainerFailed returns an error for container operations
func ContainerFailed(op string, cause error) *KilnError {
	return Wrap(ExitContainerFailed, fmt.Sprintf("container %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *KilnError {
	return Wrap(ExitConfigError, message, cause)
}

// LoginError returns an error for login shell failures
func LoginError(message string, cause error) *KilnError {
	return Wrap(ExitLoginError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *KilnError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var kilnErr *KilnError
	if errors.As(err, &kilnErr) {
		return kilnErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

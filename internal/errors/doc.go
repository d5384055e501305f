// Package errors provides typed errors with exit codes for kiln-ctl.
//
// # Error Types
//
// KilnError carries an exit code, a message, and an optional cause. The
// process exit code is derived from the first KilnError in the chain via
// GetExitCode; unrecognized errors map to ExitGeneralError.
//
// # Usage
//
//	return errors.InstanceNotFound(name)
//	return errors.ContainerFailed("create", err)
//
// Driver resolution failures from the driver registry are wrapped with
// errors.UnknownDriver so they surface with a dedicated exit code before
// any container operation is attempted.
package errors

// Package logging provides logging utilities for kiln-ctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating instance", "name", name, "driver", driverName)
//	logging.Warn("slow engine response", "driver", driverName)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Creating instance %s...", name)
//	logging.UserSuccess("Instance %s created", name)
//	logging.UserWarning("Driver %s has no connection metadata", driverName)
//	logging.UserError("Failed to create instance: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging

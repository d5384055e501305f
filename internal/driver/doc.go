// Package driver provides the pluggable infrastructure-driver abstraction
// behind kiln-ctl.
//
// A Driver translates abstract lifecycle intents (create, login, destroy,
// exec) into backend-specific command shapes. The orchestration layer is
// written once against the Driver interface; a backend is a drop-in
// replacement for another backend.
//
// # Composition Over Inheritance
//
// All CLI-compatible backends share one lifecycle implementation: the
// unexported engine type, parameterized by a Profile value holding the
// backend-specific strings and behaviors (engine binary, login template,
// connection-variable provider). Adding a backend whose CLI is compatible
// with docker's means writing a Profile, not reimplementing lifecycle
// management. Podman is exactly that: the shared engine plus a different
// exec verb in the login template and no ansible connection plugin.
//
// # Login Templates
//
// LoginCmdTemplate returns a format string with {instance}, {columns}, and
// {lines} placeholders. The caller merges LoginOptions with terminal
// geometry and renders the template via RenderTemplate or LoginArgv; a
// template placeholder without a matching variable is an error caught
// before execution.
//
// # Registry
//
// The Default registry maps configured driver names to factories and fails
// with *UnknownDriverError for unregistered names, before any container
// operation is attempted. Detect and Available probe which engine binaries
// are installed.
//
// # Mock Driver
//
// For testing, use NewMockDriver() to create a mock implementation that can
// be configured with instance state, canned exec results, and injected
// errors, and used to verify calls.
package driver

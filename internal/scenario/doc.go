// Package scenario implements the create and destroy pipelines that connect
// scenario configuration to a driver. It owns instance metadata lifecycle:
// metadata is written only after the driver reports a successful create,
// and removed even when destroy finds the container already gone.
package scenario

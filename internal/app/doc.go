// Package app wires the pieces of kiln-ctl together.
//
// An App value carries the paths, driver registry, and resolved driver the
// commands operate on. Commands read app.Default; tests swap it out with
// SetDefault and a MockDriver-backed App so that no real container engine
// is touched.
//
//	testApp := app.New(
//	    app.WithPaths(paths),
//	    app.WithDriver(mock),
//	)
//	app.SetDefault(testApp)
//	defer app.ResetDefault()
package app

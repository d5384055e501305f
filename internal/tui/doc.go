// Package tui provides terminal user interface components for kiln-ctl.
//
// This package uses the Bubble Tea framework to create interactive terminal
// interfaces, primarily for the login command's instance picker.
//
// # Instance Picker
//
// The picker displays known instances and allows selection:
//
//	result, err := tui.RunPicker(instances, app.Default.Status)
//	switch result.Action {
//	case tui.ActionLogin:
//	    // Open a shell into result.Instance
//	case tui.ActionDestroy:
//	    // Destroy result.Instance
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Lists all instances with driver, scenario, and image
//   - Keyboard navigation (j/k or arrows) and filtering (/)
//   - Quick actions: Enter (login), d (destroy), q (quit)
//   - Status indicators driven by the active driver
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui

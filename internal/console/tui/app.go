// Package tui is the interactive setup form.
//
// The form is drawn from a render.Document. Key presses become Controller
// calls, and the Controller's request results arrive back through Update, so
// every dispatch runs on the Bubble Tea event loop.
//
// Keys:
//   - tab / shift+tab: move between fields
//   - ← / →: choose a network
//   - enter: save, when the form allows it
//   - ctrl+r: scan again
//   - esc: quit
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the form on the alternate screen and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}

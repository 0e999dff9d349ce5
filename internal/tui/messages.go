package tui

import "github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"

// transitionDoneMsg carries a finished backend exchange back to Update.
type transitionDoneMsg struct {
	completion wizard.Completion
}

// exportDoneMsg reports the result of a PDF export.
type exportDoneMsg struct {
	err  error
	path string
}

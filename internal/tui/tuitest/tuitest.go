// Package tuitest holds helpers for driving Bubble Tea models in tests.
package tuitest

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Common key messages.
var (
	Enter    = tea.KeyMsg{Type: tea.KeyEnter}
	Tab      = tea.KeyMsg{Type: tea.KeyTab}
	ShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	Esc      = tea.KeyMsg{Type: tea.KeyEsc}
	Space    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	Down     = tea.KeyMsg{Type: tea.KeyDown}
	Up       = tea.KeyMsg{Type: tea.KeyUp}
	CtrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
	CtrlR    = tea.KeyMsg{Type: tea.KeyCtrlR}
)

// Runes types text as a single key message.
func Runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

// Collect runs cmd and returns the messages it produced, expanding batches.
// Commands that block on timers (cursor blink, spinner ticks) are run too, so
// only call it on commands whose timers are short.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes terminal escape sequences from a rendered view.
func StripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

// ContainsInOrder reports whether every expected string occurs in output,
// each after the previous one.
func ContainsInOrder(output string, expected ...string) bool {
	rest := output
	for _, exp := range expected {
		i := strings.Index(rest, exp)
		if i < 0 {
			return false
		}
		rest = rest[i+len(exp):]
	}
	return true
}

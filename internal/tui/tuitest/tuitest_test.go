package tuitest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct{ n int }

func TestCollect(t *testing.T) {
	ping := func(n int) tea.Cmd {
		return func() tea.Msg { return pingMsg{n} }
	}

	assert.Nil(t, Collect(nil))
	assert.Equal(t, []tea.Msg{pingMsg{1}}, Collect(ping(1)))
	assert.Equal(t,
		[]tea.Msg{pingMsg{1}, pingMsg{2}, pingMsg{3}},
		Collect(tea.Batch(ping(1), tea.Batch(ping(2), ping(3)))))
	assert.Empty(t, Collect(func() tea.Msg { return nil }))
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "200만원", StripANSI("\x1b[1;38;2;21;101;192m200만원\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestContainsInOrder(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
		want     bool
	}{
		{name: "in order", expected: []string{"Goal", "Gap", "Portfolio"}, want: true},
		{name: "out of order", expected: []string{"Portfolio", "Goal"}, want: false},
		{name: "missing", expected: []string{"Goal", "Simulation"}, want: false},
		{name: "nothing expected", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsInOrder("Goal > Gap > Portfolio", tt.expected...))
		})
	}
}

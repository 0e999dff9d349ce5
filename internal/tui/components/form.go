package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/themes"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

// Form field indexes, in focus order.
const (
	FieldGoalAmount = iota
	FieldMonths
	FieldMonthly
	FieldPrincipal
	FieldYouth
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldGoalAmount: "Goal amount (KRW)",
	FieldMonths:     "Time horizon (months)",
	FieldMonthly:    "Monthly contribution",
	FieldPrincipal:  "Initial principal",
	FieldYouth:      "Youth savings eligible",
}

var fieldPlaceholders = [FieldYouth]string{
	FieldGoalAmount: "50,000,000",
	FieldMonths:     "24",
	FieldMonthly:    "1,500,000",
	FieldPrincipal:  "0",
}

// GoalFormModel is the step 1 input form.
type GoalFormModel struct {
	theme  themes.Theme
	inputs []textinput.Model
	focus  int
	youth  bool
	locked bool
}

// NewGoalForm creates an empty form focused on the goal amount.
func NewGoalForm(theme themes.Theme) GoalFormModel {
	inputs := make([]textinput.Model, FieldYouth)
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fieldPlaceholders[i]
		in.CharLimit = 20
		in.Width = 20
		inputs[i] = in
	}
	inputs[FieldGoalAmount].Focus()

	return GoalFormModel{
		theme:  theme,
		inputs: inputs,
	}
}

// Update handles focus movement, the youth toggle and typing.
func (m GoalFormModel) Update(msg tea.Msg) (GoalFormModel, tea.Cmd) {
	if m.locked {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case " ":
			if m.focus == FieldYouth {
				m.youth = !m.youth
				return m, nil
			}
		}
	}

	if m.focus == FieldYouth {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *GoalFormModel) setFocus(field int) tea.Cmd {
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if field < FieldYouth {
		m.inputs[field].Focus()
		return textinput.Blink
	}
	return nil
}

// Value returns the raw form contents.
func (m GoalFormModel) Value() wizard.GoalForm {
	return wizard.GoalForm{
		GoalAmount:           m.inputs[FieldGoalAmount].Value(),
		TimeHorizonMonths:    m.inputs[FieldMonths].Value(),
		MonthlyContribution:  m.inputs[FieldMonthly].Value(),
		InitialPrincipal:     m.inputs[FieldPrincipal].Value(),
		EligibleYouthSavings: m.youth,
	}
}

// SetValue replaces the form contents.
func (m *GoalFormModel) SetValue(v wizard.GoalForm) {
	m.inputs[FieldGoalAmount].SetValue(v.GoalAmount)
	m.inputs[FieldMonths].SetValue(v.TimeHorizonMonths)
	m.inputs[FieldMonthly].SetValue(v.MonthlyContribution)
	m.inputs[FieldPrincipal].SetValue(v.InitialPrincipal)
	m.youth = v.EligibleYouthSavings
}

// Lock makes the form read-only.
func (m *GoalFormModel) Lock() {
	m.locked = true
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// Locked reports whether the form is read-only.
func (m GoalFormModel) Locked() bool {
	return m.locked
}

// Reset clears every field and unlocks the form.
func (m *GoalFormModel) Reset() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.youth = false
	m.locked = false
	return m.setFocus(FieldGoalAmount)
}

// Focused returns the index of the focused field.
func (m GoalFormModel) Focused() int {
	return m.focus
}

// View renders the form.
func (m GoalFormModel) View() string {
	rows := make([]string, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		label := m.theme.Label.Render(fieldLabels[i])
		if i == m.focus && !m.locked {
			label = m.theme.Focused.Width(m.theme.Label.GetWidth()).Render(fieldLabels[i])
		}

		var value string
		switch {
		case i == FieldYouth:
			box := "[ ]"
			if m.youth {
				box = "[x]"
			}
			value = m.theme.Normal.Render(box)
		case m.locked:
			value = m.theme.Normal.Render(m.inputs[i].Value())
		default:
			value = m.inputs[i].View()
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}

	if m.locked {
		rows = append(rows, "", m.theme.Faint.Render("Goal submitted. Press r to restart with a new goal."))
	}
	return strings.Join(rows, "\n")
}

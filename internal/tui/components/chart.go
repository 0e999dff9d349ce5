package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/format"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/render"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/themes"
)

const (
	minChartWidth = 20
	labelWidth    = 16
)

// Canvas draws charts as colored block characters.
type Canvas struct {
	theme themes.Theme
	live  int
}

// NewCanvas creates a terminal canvas.
func NewCanvas(theme themes.Theme) *Canvas {
	return &Canvas{theme: theme}
}

// Draw implements render.Canvas.
func (c *Canvas) Draw(spec render.ChartSpec) (render.Chart, error) {
	switch spec.Kind {
	case render.ChartDoughnut, render.ChartBar:
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	c.live++
	return &Chart{canvas: c, spec: spec}, nil
}

// Live counts charts that were drawn and not disposed.
func (c *Canvas) Live() int {
	return c.live
}

// Chart is a chart drawn on a terminal canvas.
type Chart struct {
	canvas   *Canvas
	spec     render.ChartSpec
	disposed bool
}

// Spec implements render.Chart.
func (ch *Chart) Spec() render.ChartSpec {
	return ch.spec
}

// Dispose implements render.Chart. A disposed chart renders nothing.
func (ch *Chart) Dispose() {
	if ch.disposed {
		return
	}
	ch.disposed = true
	ch.canvas.live--
}

// View renders the chart in at most width columns.
func (ch *Chart) View(width int) string {
	if ch.disposed {
		return ""
	}
	if width < minChartWidth {
		width = minChartWidth
	}
	theme := ch.canvas.theme

	var body string
	switch ch.spec.Kind {
	case render.ChartDoughnut:
		body = ch.doughnut(width)
	case render.ChartBar:
		body = ch.bars(width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, theme.Subtitle.Render(ch.spec.Title), body)
}

// doughnut draws one proportional strip followed by a legend.
func (ch *Chart) doughnut(width int) string {
	if len(ch.spec.Series) == 0 {
		return ""
	}
	s := ch.spec.Series[0]

	total := 0.0
	for _, v := range s.Values {
		if v > 0 {
			total += v
		}
	}

	var strip strings.Builder
	used := 0
	for i, v := range s.Values {
		if v <= 0 || total == 0 {
			continue
		}
		cells := int(math.Round(v / total * float64(width)))
		if i == len(s.Values)-1 || used+cells > width {
			cells = width - used
		}
		used += cells
		strip.WriteString(fill(roleAt(s, i)).Render(strings.Repeat("█", cells)))
	}

	lines := []string{strip.String(), ""}
	for i := range s.Values {
		var text string
		switch {
		case i < len(s.PointLabels):
			text = s.PointLabels[i]
		case i < len(ch.spec.Labels):
			text = ch.spec.Labels[i]
		}
		lines = append(lines, fill(roleAt(s, i)).Render("■")+" "+text)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// bars draws one horizontal bar per series and label. Line series are drawn
// as a marker row scaled like the bars.
func (ch *Chart) bars(width int) string {
	maxValue := 0.0
	for _, s := range ch.spec.Series {
		for _, v := range s.Values {
			maxValue = math.Max(maxValue, v)
		}
	}
	barWidth := width - labelWidth - 14
	if barWidth < 4 {
		barWidth = 4
	}

	theme := ch.canvas.theme
	var lines []string
	for i, label := range ch.spec.Labels {
		lines = append(lines, theme.Bold.Render(label))
		for _, s := range ch.spec.Series {
			if i >= len(s.Values) {
				continue
			}
			v := s.Values[i]
			cells := 0
			if maxValue > 0 && v > 0 {
				cells = int(math.Round(v / maxValue * float64(barWidth)))
			}
			glyph := "█"
			if s.Line {
				glyph = "━"
				if s.Dashed {
					glyph = "╌"
				}
			}
			name := lipgloss.NewStyle().Width(labelWidth).Render("  " + s.Label)
			bar := fill(s.Role).Render(strings.Repeat(glyph, cells))
			lines = append(lines, fmt.Sprintf("%s%s %s", name, bar, ch.value(v)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (ch *Chart) value(v float64) string {
	if ch.spec.Unit == render.UnitKRW {
		return format.KRW(v)
	}
	return format.Weight(v)
}

func roleAt(s render.Series, i int) render.ColorRole {
	if i < len(s.Roles) {
		return s.Roles[i]
	}
	return s.Role
}

func fill(role render.ColorRole) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(render.Palette[role].Fill))
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/format"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/render"
)

// AssetHeaders are the column titles of the asset listing.
var AssetHeaders = []string{"Asset", "Class", "Gross return", "Duration", "Tax", "Monthly limit", "Annual limit"}

// RenderTable draws a render.Table with rounded borders. The last column of
// toned rows is colored by sign.
func RenderTable(t render.Table) string {
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, r.Cells)
	}
	last := len(t.Headers) - 1

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(t.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if col == last && row >= 0 && row < len(t.Rows) {
				return TableCellStyle.Inherit(ToneStyle(t.Rows[row].Tone))
			}
			return TableCellStyle
		}).
		String()
}

// RenderStats lays out labelled values one per line.
func RenderStats(stats []render.Stat) string {
	lines := make([]string, 0, len(stats))
	for _, s := range stats {
		lines = append(lines, LabelStyle.Render(s.Label)+BoldStyle.Render(s.Value))
	}
	return strings.Join(lines, "\n")
}

// PrintGap writes the gap analysis summary.
func PrintGap(w io.Writer, view render.GapView) error {
	body := lipgloss.JoinVertical(lipgloss.Left,
		FramingStyle(view.Framing).Render(view.Headline),
		strings.Join(view.Details, "\n"),
		"",
		RenderStats(view.Stats),
	)
	_, err := fmt.Fprintln(w, RenderBox("Gap analysis", body))
	return err
}

// PrintAllocation writes the optimized portfolio.
func PrintAllocation(w io.Writer, view render.AllocationView) error {
	body := lipgloss.JoinVertical(lipgloss.Left,
		RenderStats(view.Stats),
		"",
		RenderTable(view.Table),
	)
	_, err := fmt.Fprintln(w, RenderBox("Portfolio", body))
	return err
}

// PrintSimulation writes the rate scenarios.
func PrintSimulation(w io.Writer, view render.SimulationView) error {
	body := lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("Base rate")+BoldStyle.Render(view.BaseRate),
		"",
		RenderTable(view.Table),
	)
	_, err := fmt.Fprintln(w, RenderBox("Rate simulation", body))
	return err
}

// AssetTable formats the backend asset universe.
func AssetTable(assets []model.Asset) render.Table {
	rows := make([]render.Row, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, render.Row{Cells: []string{
			a.Name,
			string(a.AssetClass),
			format.Percent(a.GrossReturn),
			format.Years(a.Duration),
			string(a.TaxBenefit),
			optionalKRW(a.MonthlyLimit),
			optionalKRW(a.AnnualLimit),
		}})
	}
	return render.Table{Headers: AssetHeaders, Rows: rows}
}

// PrintAssets writes the asset listing.
func PrintAssets(w io.Writer, assets []model.Asset) error {
	if len(assets) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("The backend returned no assets."))
		return err
	}
	_, err := fmt.Fprintln(w, RenderTable(AssetTable(assets)))
	return err
}

func optionalKRW(v *float64) string {
	if v == nil {
		return format.Missing
	}
	return format.KRW(*v)
}

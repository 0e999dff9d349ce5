// Package report exports a planning session as a PDF document.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/format"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

// ErrEmptySession is returned when there is no submitted goal to export.
var ErrEmptySession = errors.New("nothing to export: no goal has been analyzed")

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	fontFamily   = "Helvetica"
)

type column struct {
	title string
	width float64
	align string
}

var allocationColumns = []column{
	{title: "Product", width: 60, align: "L"},
	{title: "Weight", width: 22, align: "R"},
	{title: "Monthly", width: 38, align: "R"},
	{title: "Duration contrib.", width: 30, align: "R"},
	{title: "After-tax return", width: 30, align: "R"},
}

var scenarioColumns = []column{
	{title: "Scenario", width: 36, align: "L"},
	{title: "Shift", width: 18, align: "R"},
	{title: "Rate", width: 20, align: "R"},
	{title: "Simple savings", width: 34, align: "R"},
	{title: "GBI portfolio", width: 34, align: "R"},
	{title: "Difference", width: 38, align: "R"},
}

type document struct {
	pdf     *fpdf.Fpdf
	session wizard.Session
}

// WritePDF renders every part of the session that exists and writes the
// document to w.
func WritePDF(w io.Writer, session wizard.Session) error {
	return write(w, session, time.Now())
}

// WriteFile writes the session PDF to path, creating missing directories.
func WriteFile(path string, session wizard.Session) (err error) {
	if session.Goal == nil {
		return ErrEmptySession
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report: %w", closeErr)
		}
	}()
	return WritePDF(f, session)
}

func write(w io.Writer, session wizard.Session, generated time.Time) error {
	if session.Goal == nil {
		return ErrEmptySession
	}

	doc := &document{
		pdf:     fpdf.New("P", "mm", "A4", ""),
		session: session,
	}
	doc.pdf.SetMargins(marginLeft, marginTop, marginRight)
	doc.pdf.SetAutoPageBreak(true, marginBottom)
	doc.pdf.SetTitle("Goal-based investment plan", false)
	doc.pdf.SetCreationDate(generated)
	doc.pdf.AddPage()

	doc.header(generated)
	doc.goal()
	if session.Gap != nil {
		doc.gap()
	}
	if session.Optimization != nil {
		doc.allocation()
	}
	if session.Simulation != nil {
		doc.scenarios()
	}

	if err := doc.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (d *document) header(generated time.Time) {
	d.pdf.SetFont(fontFamily, "B", 20)
	d.pdf.SetTextColor(21, 101, 192)
	d.pdf.CellFormat(contentWidth, 12, "Goal-based investment plan", "", 1, "L", false, 0, "")

	d.pdf.SetFont(fontFamily, "I", 9)
	d.pdf.SetTextColor(120, 120, 120)
	d.pdf.CellFormat(contentWidth, 5,
		fmt.Sprintf("Session %s, generated %s", d.session.ID, generated.Format("2006-01-02 15:04")),
		"", 1, "L", false, 0, "")
	d.pdf.Ln(4)
}

func (d *document) section(title string) {
	d.pdf.Ln(3)
	d.pdf.SetFont(fontFamily, "B", 13)
	d.pdf.SetTextColor(0, 51, 102)
	d.pdf.CellFormat(contentWidth, 8, title, "B", 1, "L", false, 0, "")
	d.pdf.Ln(2)
}

func (d *document) pair(label, value string) {
	d.pdf.SetFont(fontFamily, "", 10)
	d.pdf.SetTextColor(80, 80, 80)
	d.pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	d.pdf.SetTextColor(20, 20, 20)
	d.pdf.CellFormat(contentWidth-60, 6, pdfText(value), "", 1, "L", false, 0, "")
}

func (d *document) goal() {
	g := d.session.Goal
	d.section("1. Goal")
	d.pair("Goal amount", format.Won(g.GoalAmount))
	d.pair("Time horizon", fmt.Sprintf("%d months", g.TimeHorizonMonths))
	d.pair("Monthly contribution", format.Won(g.MonthlyContribution))
	d.pair("Initial principal", format.Won(g.InitialPrincipal))
	youth := "No"
	if g.EligibleYouthSavings {
		youth = "Yes"
	}
	d.pair("Youth savings eligible", youth)
}

func (d *document) gap() {
	r := d.session.Gap
	d.section("2. Gap analysis")
	d.pair("Safe-asset future value", format.Won(r.FutureValueSafe))
	d.pair("Goal amount", format.Won(r.GoalAmount))
	d.pair("Gap", format.Won(r.Gap))
	d.pair("Required annual return", format.OptionalPercent(r.RequiredAnnualReturn))
	verdict := "Safe assets alone reach the goal."
	if r.OptimizationNeeded {
		verdict = "Optimization needed to close the gap."
	}
	d.pair("Result", verdict)
}

func (d *document) allocation() {
	r := d.session.Optimization
	d.section("3. Portfolio")
	d.pair("Portfolio duration", format.Years(r.PortfolioDuration))
	d.pair("Expected return", format.Percent(r.PortfolioReturn))
	d.pair("Expected future value", format.Won(r.ExpectedFutureValue))
	d.pdf.Ln(2)

	rows := make([][]string, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		rows = append(rows, []string{
			a.Name,
			format.Weight(a.Weight),
			format.Won(a.MonthlyAmount),
			format.Years(a.DurationContribution),
			format.Percent(a.AfterTaxReturn),
		})
	}
	d.table(allocationColumns, rows, nil)
}

func (d *document) scenarios() {
	r := d.session.Simulation
	d.section("4. Rate simulation")
	d.pair("Base rate", format.Percent(r.BaseRate))
	d.pdf.Ln(2)

	rows := make([][]string, 0, len(r.Results))
	tones := make([]int, 0, len(r.Results))
	for _, s := range r.Results {
		rows = append(rows, []string{
			s.Label,
			format.PointShift(s.RateShift),
			format.Percent(s.NewRate),
			format.Won(s.SimpleSavingsFV),
			format.Won(s.PortfolioFV),
			signedWon(s),
		})
		tones = append(tones, sign(s.Difference))
	}
	d.table(scenarioColumns, rows, tones)
}

// table draws a bordered table. tones, when set, colors the last column of
// each row green for positive and red for negative values.
func (d *document) table(cols []column, rows [][]string, tones []int) {
	d.pdf.SetFont(fontFamily, "B", 9)
	d.pdf.SetFillColor(21, 101, 192)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetDrawColor(200, 200, 200)
	for _, c := range cols {
		d.pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont(fontFamily, "", 9)
	for i, row := range rows {
		fill := i%2 == 1
		d.pdf.SetFillColor(245, 247, 250)
		for j, c := range cols {
			d.pdf.SetTextColor(30, 30, 30)
			if tones != nil && j == len(cols)-1 {
				switch tones[i] {
				case 1:
					d.pdf.SetTextColor(46, 125, 50)
				case -1:
					d.pdf.SetTextColor(229, 57, 53)
				}
			}
			d.pdf.CellFormat(c.width, 6, pdfText(row[j]), "1", 0, c.align, fill, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func signedWon(s model.ScenarioRow) string {
	if s.Difference >= 0 {
		return "+" + format.Won(s.Difference)
	}
	return format.Won(s.Difference)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// pdfText replaces characters the core fonts cannot encode.
func pdfText(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsPrint(r) || r == ' ') {
			return r
		}
		return '?'
	}, s)
}

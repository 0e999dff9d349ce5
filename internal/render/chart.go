// Package render turns backend results into display rows and chart
// specifications, and manages the single live chart instance of each slot.
package render

import (
	"errors"
	"fmt"
)

// ChartKind selects how a chart specification is drawn.
type ChartKind string

// Chart kinds.
const (
	ChartDoughnut ChartKind = "doughnut"
	ChartBar      ChartKind = "bar"
)

// ColorRole names a fixed color assignment.
type ColorRole string

// Color roles.
const (
	RoleAllocation1 ColorRole = "allocation-1"
	RoleAllocation2 ColorRole = "allocation-2"
	RoleAllocation3 ColorRole = "allocation-3"
	RoleAllocation4 ColorRole = "allocation-4"
	RoleAllocation5 ColorRole = "allocation-5"
	RoleAllocation6 ColorRole = "allocation-6"
	RoleSavings     ColorRole = "savings"
	RolePortfolio   ColorRole = "portfolio"
	RoleGoal        ColorRole = "goal"
)

// AllocationRoles is the doughnut palette in slice order.
var AllocationRoles = []ColorRole{
	RoleAllocation1, RoleAllocation2, RoleAllocation3,
	RoleAllocation4, RoleAllocation5, RoleAllocation6,
}

// Palette maps each role to its fill and border color.
var Palette = map[ColorRole]struct{ Fill, Border string }{
	RoleAllocation1: {Fill: "#4CAF50", Border: "#ffffff"},
	RoleAllocation2: {Fill: "#2196F3", Border: "#ffffff"},
	RoleAllocation3: {Fill: "#FF9800", Border: "#ffffff"},
	RoleAllocation4: {Fill: "#9C27B0", Border: "#ffffff"},
	RoleAllocation5: {Fill: "#F44336", Border: "#ffffff"},
	RoleAllocation6: {Fill: "#00BCD4", Border: "#ffffff"},
	RoleSavings:     {Fill: "#90CAF9", Border: "#1565C0"},
	RolePortfolio:   {Fill: "#A5D6A7", Border: "#2E7D32"},
	RoleGoal:        {Fill: "#E53935", Border: "#E53935"},
}

// Unit tells a canvas how to format values for ticks and tooltips.
type Unit int

// Units.
const (
	UnitPercent Unit = iota
	UnitKRW
)

// Series is one numeric data set of a chart.
type Series struct {
	Label string
	// Roles colors each point (doughnut); Role colors the whole series.
	Roles []ColorRole
	// PointLabels are per-point tooltip texts, aligned with Values.
	PointLabels []string
	Values      []float64
	Role        ColorRole
	// Line draws the series as a line over the bars.
	Line   bool
	Dashed bool
}

// ChartSpec fully describes a chart independent of the drawing backend.
type ChartSpec struct {
	Kind   ChartKind
	Title  string
	Labels []string
	Series []Series
	Unit   Unit
}

// Chart is a live visualization instance.
type Chart interface {
	Spec() ChartSpec
	Dispose()
}

// Canvas is a drawing context able to create chart instances.
type Canvas interface {
	Draw(spec ChartSpec) (Chart, error)
}

// ErrNoCanvas is returned when a slot has nothing to draw on.
var ErrNoCanvas = errors.New("no canvas attached to chart slot")

// Slot holds at most one live chart. Every Render disposes the previous
// instance before drawing the next one.
type Slot struct {
	canvas  Canvas
	current Chart
	name    string
}

// NewSlot creates an empty slot drawing on canvas.
func NewSlot(name string, canvas Canvas) *Slot {
	return &Slot{name: name, canvas: canvas}
}

// Render replaces the slot's chart with one drawn from spec.
func (s *Slot) Render(spec ChartSpec) (Chart, error) {
	s.Dispose()
	if s.canvas == nil {
		return nil, fmt.Errorf("%s: %w", s.name, ErrNoCanvas)
	}
	chart, err := s.canvas.Draw(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to draw %s chart: %w", s.name, err)
	}
	s.current = chart
	return chart, nil
}

// Dispose releases the live chart, if any.
func (s *Slot) Dispose() {
	if s.current != nil {
		s.current.Dispose()
		s.current = nil
	}
}

// Chart returns the live chart or nil.
func (s *Slot) Chart() Chart {
	return s.current
}

// Name identifies the slot.
func (s *Slot) Name() string {
	return s.name
}

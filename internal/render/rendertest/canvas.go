// Package rendertest provides a recording canvas for tests.
package rendertest

import (
	"sync"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/render"
)

// Canvas records every chart it draws and how many are still live.
type Canvas struct {
	Err    error
	charts []*Chart
	mu     sync.Mutex
}

// Chart is a recorded chart instance.
type Chart struct {
	canvas   *Canvas
	spec     render.ChartSpec
	disposed bool
}

// Draw implements render.Canvas.
func (c *Canvas) Draw(spec render.ChartSpec) (render.Chart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	chart := &Chart{canvas: c, spec: spec}
	c.charts = append(c.charts, chart)
	return chart, nil
}

// Spec implements render.Chart.
func (ch *Chart) Spec() render.ChartSpec {
	return ch.spec
}

// Dispose implements render.Chart.
func (ch *Chart) Dispose() {
	ch.canvas.mu.Lock()
	defer ch.canvas.mu.Unlock()
	ch.disposed = true
}

// Disposed reports whether the chart was released.
func (ch *Chart) Disposed() bool {
	ch.canvas.mu.Lock()
	defer ch.canvas.mu.Unlock()
	return ch.disposed
}

// Live counts charts drawn and not yet disposed.
func (c *Canvas) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := 0
	for _, ch := range c.charts {
		if !ch.disposed {
			live++
		}
	}
	return live
}

// Drawn counts every chart ever drawn.
func (c *Canvas) Drawn() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.charts)
}

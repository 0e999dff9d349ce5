package tui

import (
	"context"
	"time"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/themes"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

// Config holds TUI configuration.
type Config struct {
	Context   context.Context
	Backend   wizard.Backend
	Theme     themes.Theme
	ReportDir string
	Timeout   time.Duration
	Width     int
	Height    int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Context:   context.Background(),
		Theme:     themes.Default,
		ReportDir: ".",
		Timeout:   30 * time.Second,
		Width:     100,
		Height:    32,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTimeout bounds every backend call started from the UI.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithReportDir sets where exported PDFs are written.
func WithReportDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.ReportDir = dir
		}
	}
}

// WithContext sets the parent context of backend calls.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

package cli

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// NewSpinner creates an indeterminate progress indicator writing to w.
func NewSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionClearOnFinish(),
	)
}

// WithSpinner runs fn while a spinner is animated on w. The spinner is
// cleared before returning fn's error.
func WithSpinner(w io.Writer, description string, fn func() error) error {
	bar := NewSpinner(w, description)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(stop)
	wg.Wait()

	if finishErr := bar.Finish(); finishErr != nil {
		slog.Debug("Failed to clear spinner", "error", finishErr)
	}
	return err
}

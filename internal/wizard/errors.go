package wizard

import (
	"errors"
	"strings"
)

// Guard failures.
var (
	ErrBusy                  = errors.New("a request is already in progress")
	ErrGoalLocked            = errors.New("goal already submitted; restart to change it")
	ErrWrongStep             = errors.New("action is not available on the current step")
	ErrOptimizationNotNeeded = errors.New("optimization is not needed for this goal")
	ErrStepUnavailable       = errors.New("step has no data yet")
	ErrStale                 = errors.New("result belongs to a session that was restarted")
)

// ValidationError lists every rule the submitted goal breaks.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "\n")
}

// RejectionError is a successful exchange whose payload reports a business
// failure, such as an infeasible optimization.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return "request was rejected"
	}
	return e.Message
}

// ActionError is a transport or application failure of a step's backend call.
type ActionError struct {
	Err    error
	Action Action
}

func (e *ActionError) Error() string {
	return e.Action.failurePrefix() + ": " + e.Err.Error()
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

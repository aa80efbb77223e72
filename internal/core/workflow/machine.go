package workflow

import (
	"fmt"

	"greenloop/internal/core/domain"
)

// State is one step of the submission flow.
type State string

const (
	StateScan    State = "scan"
	StateForm    State = "form"
	StateSuccess State = "success"
)

// event is a state-machine trigger. Failed validation and failed
// persistence are deliberately not events: they leave the state untouched
// (form -> form) while the error is surfaced to the caller.
type event string

const (
	eventScanResolved    event = "scan_resolved"
	eventSkipScan        event = "skip_scan"
	eventSubmitSucceeded event = "submit_succeeded"
	eventReset           event = "reset"
)

// transitions is the full legal transition table.
var transitions = map[State]map[event]State{
	StateScan: {
		eventScanResolved: StateForm,
		eventSkipScan:     StateForm,
	},
	StateForm: {
		eventSubmitSucceeded: StateSuccess,
	},
	StateSuccess: {
		eventReset: StateScan, // entry-state specific, see Workflow.Reset
	},
}

// Next returns the state after applying ev, or an error when the event is
// not legal from the current state. Pure: no side effects, no draft access.
func Next(s State, ev event) (State, error) {
	if next, ok := transitions[s][ev]; ok {
		return next, nil
	}
	return s, fmt.Errorf("event %s not allowed at step %s: %w", ev, s, domain.ErrInvalidInput)
}

// guard reports whether ev would be legal from s without applying it.
func guard(s State, ev event) error {
	_, err := Next(s, ev)
	return err
}

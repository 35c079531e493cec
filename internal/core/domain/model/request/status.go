package request

import (
	"fmt"
	"strings"

	"lifebank/internal/pkg/errs"
)

// Status represents the lifecycle state of a blood request.
//
// State transitions:
//
//	Pending ──> Approved ──> Fulfilled ──> Completed
//	   │           │
//	   │           └──────> Cancelled
//	   ├──────────────────> Cancelled
//	   └──────────────────> Rejected
//
// Completed, Rejected and Cancelled are terminal.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Pending is the initial status; the request awaits a decision by the blood bank.
	Pending

	// Approved means the blood bank accepted the request and will prepare units.
	Approved

	// Fulfilled means units were prepared and dispatched.
	Fulfilled

	// Completed means the hospital received the units. Terminal.
	Completed

	// Rejected means the blood bank declined the request. Terminal.
	Rejected

	// Cancelled means the request was withdrawn before fulfillment. Terminal.
	Cancelled
)

var statusStrings = map[Status]string{
	Pending:   "Pending",
	Approved:  "Approved",
	Fulfilled: "Fulfilled",
	Completed: "Completed",
	Rejected:  "Rejected",
	Cancelled: "Cancelled",
}

// transitions lists, for each source status, the statuses it may move to.
// Statuses absent from the map, and terminal statuses, have no exits.
//
//nolint:exhaustive // terminal and Unknown statuses are intentionally absent
var transitions = map[Status][]Status{
	Pending:   {Approved, Rejected, Cancelled},
	Approved:  {Fulfilled, Cancelled},
	Fulfilled: {Completed},
}

// Validate checks that s is one of the six defined statuses.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return fmt.Errorf("%w: %w", ErrInvalidStatus,
			errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s)))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown".
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
//
// Valid transitions:
//   - Pending -> Approved, Rejected, Cancelled
//   - Approved -> Fulfilled, Cancelled
//   - Fulfilled -> Completed
//
// Every other pair, including any pair starting at a terminal status, is illegal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal is true exactly for Completed, Rejected and Cancelled.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Rejected || s == Cancelled
}

// ParseStatus accepts the status name case-insensitively.
func ParseStatus(str string) (Status, error) {
	for s, name := range statusStrings {
		if strings.EqualFold(name, strings.TrimSpace(str)) {
			return s, nil
		}
	}
	return UnknownStatus, fmt.Errorf("%w: %q", ErrInvalidStatus, str)
}

// AllStatuses returns the defined statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Approved, Fulfilled, Completed, Rejected, Cancelled}
}

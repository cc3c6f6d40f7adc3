package order

import (
	"errors"
	"fmt"
	"strings"

	"orderintegration/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Created ──> Prepared ──> Dispatched ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal: no further transitions are allowed.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first registered.
	Created

	// Prepared indicates the order has been picked and packed.
	Prepared

	// Dispatched indicates the order has left the warehouse.
	Dispatched

	// Delivered indicates the order reached the customer.
	// This is a terminal status with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was cancelled before delivery.
	// This is a terminal status with no further transitions allowed.
	Cancelled
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
// Callers classify transition failures with errors.Is against this value.
var ErrInvalidTransition = errors.New("invalid status transition")

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		Prepared:   "Prepared",
		Dispatched: "Dispatched",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "Created",
		Prepared:   "Prepared",
		Dispatched: "Dispatched",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getTransitionTable returns the allowed transitions for each status.
// Terminal statuses are present with an empty allowed set; an absent key means
// the status is unknown. The distinction matters: terminal statuses are valid
// states that simply allow nothing further, unknown statuses are invalid input.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Created:    {Prepared, Cancelled},
		Prepared:   {Dispatched, Cancelled},
		Dispatched: {Delivered, Cancelled},
		Delivered:  {},
		Cancelled:  {},
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Created, Prepared, Dispatched, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is a valid state that allows no
// further transitions.
func (s Status) IsTerminal() bool {
	allowed, ok := getTransitionTable()[s]
	return ok && len(allowed) == 0
}

// IsValidTransition reports whether an order may move from current to target.
// A transition to the same status is never valid, and no transition is valid
// out of a terminal or unknown status.
func IsValidTransition(current, target Status) bool {
	if current == target {
		return false
	}

	allowed, ok := getTransitionTable()[current]
	if !ok {
		return false
	}

	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses an order may move to from current.
// The result is a copy in stable order. Terminal and unknown statuses both
// yield an empty slice; use Validate or IsTerminal to tell them apart.
func AllowedTransitions(current Status) []Status {
	allowed, ok := getTransitionTable()[current]
	if !ok {
		return []Status{}
	}

	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// ValidateTransition checks the transition from current to target and returns an
// *InvalidTransitionError describing the allowed set when it is not permitted.
func ValidateTransition(current, target Status) error {
	if !IsValidTransition(current, target) {
		return &InvalidTransitionError{
			Current: current,
			Target:  target,
			Allowed: AllowedTransitions(current),
		}
	}
	return nil
}

// ParseStatus converts a status name into a Status value.
// Matching is case-insensitive. An unrecognized name fails with an error that
// lists the valid variants, so boundary code can reject bad input with a
// descriptive message before invoking domain logic.
func ParseStatus(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if strings.EqualFold(str, name) {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status, valid statuses: %s",
			name, strings.Join(ValidStatusNames(), ", ")))
}

// ValidStatusNames returns the names of all valid statuses in lifecycle order.
func ValidStatusNames() []string {
	statuses := []Status{Created, Prepared, Dispatched, Delivered, Cancelled}
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}

// InvalidTransitionError describes a rejected status transition. It carries the
// current and target statuses plus the set of transitions that would have been
// allowed, so callers can build a helpful conflict response.
type InvalidTransitionError struct {
	Current Status
	Target  Status
	Allowed []Status
}

func (e *InvalidTransitionError) Error() string {
	allowed := "none (terminal status)"
	if len(e.Allowed) > 0 {
		names := make([]string, len(e.Allowed))
		for i, s := range e.Allowed {
			names[i] = s.String()
		}
		allowed = strings.Join(names, ", ")
	}

	return fmt.Sprintf("%s: %s -> %s, allowed transitions from %s: %s",
		ErrInvalidTransition, e.Current, e.Target, e.Current, allowed)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

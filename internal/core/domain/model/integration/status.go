package integration

import (
	"fmt"

	"orderintegration/internal/pkg/errs"
)

// Status represents the lifecycle state of an integration attempt.
//
// State transitions:
//
//	Pending ──> Sent ──> Acked
//	              │
//	              └────> Failed
//
// Pending is reserved for a queued-send design and is not produced by the
// current direct-send flow, which creates attempts already in Sent. Both
// Pending and Sent count as "open": an asynchronous confirmation may still
// resolve them. Acked and Failed are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending indicates the attempt is queued and the payload has not been
	// handed to the target system yet.
	Pending

	// Sent indicates the payload was handed to the target system and the
	// outcome is not known yet.
	Sent

	// Acked indicates the target system confirmed the order.
	Acked

	// Failed indicates the target system rejected the order or reported a
	// business-level failure.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Pending: "Pending",
		Sent:    "Sent",
		Acked:   "Acked",
		Failed:  "Failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending: "Pending",
		Sent:    "Sent",
		Acked:   "Acked",
		Failed:  "Failed",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("integration status is invalid",
			fmt.Errorf("%d is not a valid integration status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOpen reports whether the attempt may still be resolved by a confirmation.
// Pending and Sent are open; Acked and Failed are final.
func (s Status) IsOpen() bool {
	return s == Pending || s == Sent
}

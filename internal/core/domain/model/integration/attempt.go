package integration

import (
	"errors"
	"fmt"
	"time"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/errs"
)

var (
	// ErrAttemptIsNotConstructed is returned when an Attempt instance was not
	// created through the NewSentAttempt or RestoreAttempt factory methods.
	ErrAttemptIsNotConstructed = errors.New("Attempt must be created via NewSentAttempt or RestoreAttempt")

	// ErrAttemptAlreadyResolved is returned when trying to ack or fail an
	// attempt that is no longer open.
	ErrAttemptAlreadyResolved = errors.New("integration attempt is already resolved")
)

// TargetSystem identifies the external system an attempt is directed at.
type TargetSystem int

const (
	// UnknownTarget represents an invalid or undefined target system.
	UnknownTarget TargetSystem = iota

	// TargetErp is the enterprise resource-planning system orders are forwarded to.
	TargetErp
)

// String returns the human-readable name of the target system.
func (t TargetSystem) String() string {
	if t == TargetErp {
		return "ERP"
	}
	return "Unknown"
}

// Validate checks if the TargetSystem value is valid.
func (t TargetSystem) Validate() error {
	if t != TargetErp {
		return errs.NewValueIsInvalidErrorWithCause("target system is invalid",
			fmt.Errorf("%d is not a valid target system", t))
	}
	return nil
}

// Attempt records one try at delivering an order to an external system and,
// eventually, the outcome learned for it. Attempts reference their order by id
// but are a separate aggregate root queried independently of the order.
//
// An attempt carries a snapshot of the order payload taken at send time, so
// the audit trail reflects what was actually transmitted even if the order
// changes later. The lastAttemptAt timestamp orders competing open attempts:
// asynchronous confirmations resolve the most recently attempted open one.
type Attempt struct {
	id              kernel.UUID
	orderID         kernel.UUID
	target          TargetSystem
	status          Status
	requestPayload  string
	responsePayload string
	attempts        int
	lastAttemptAt   time.Time
	errorMessage    string
	correlationID   string
	isConstructed   bool
}

// NewSentAttempt creates an attempt for the current direct-send flow: the
// payload is about to be handed to the target system, so the attempt starts in
// Sent with a single try recorded. The correlation id is optional and may be
// empty. A queued-send design would add a Pending constructor here.
func NewSentAttempt(
	id kernel.UUID,
	orderID kernel.UUID,
	target TargetSystem,
	requestPayload string,
	correlationID string,
) (*Attempt, error) {
	attempt := &Attempt{
		status:         Sent,
		requestPayload: requestPayload,
		attempts:       1,
		lastAttemptAt:  time.Now().UTC(),
		correlationID:  correlationID,
		isConstructed:  true,
	}

	if err := errors.Join(
		attempt.setID(id),
		attempt.setOrderID(orderID),
		attempt.setTarget(target),
	); err != nil {
		return nil, err
	}

	return attempt, nil
}

// RestoreAttempt reconstructs an attempt from persistence.
func RestoreAttempt(
	id kernel.UUID,
	orderID kernel.UUID,
	target TargetSystem,
	status Status,
	requestPayload, responsePayload string,
	attempts int,
	lastAttemptAt time.Time,
	errorMessage, correlationID string,
) (*Attempt, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if attempts < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("attempts is invalid",
			fmt.Errorf("%d is not greater than 0", attempts))
	}

	attempt := &Attempt{
		status:          status,
		requestPayload:  requestPayload,
		responsePayload: responsePayload,
		attempts:        attempts,
		lastAttemptAt:   lastAttemptAt.UTC(),
		errorMessage:    errorMessage,
		correlationID:   correlationID,
		isConstructed:   true,
	}

	if err := errors.Join(
		attempt.setID(id),
		attempt.setOrderID(orderID),
		attempt.setTarget(target),
	); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate ensures the Attempt instance was properly constructed through one
// of the factory methods.
func (a *Attempt) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAttemptIsNotConstructed
	}
	return nil
}

// ID returns the attempt's unique identifier.
func (a *Attempt) ID() kernel.UUID {
	return a.id
}

// OrderID returns the identifier of the order this attempt belongs to.
func (a *Attempt) OrderID() kernel.UUID {
	return a.orderID
}

// Target returns the external system the attempt is directed at.
func (a *Attempt) Target() TargetSystem {
	return a.target
}

// Status returns the current status of the attempt.
func (a *Attempt) Status() Status {
	return a.status
}

// RequestPayload returns the serialized order snapshot taken at send time.
func (a *Attempt) RequestPayload() string {
	return a.requestPayload
}

// ResponsePayload returns the serialized outcome, if one was recorded.
func (a *Attempt) ResponsePayload() string {
	return a.responsePayload
}

// Attempts returns the number of tries recorded on this attempt.
func (a *Attempt) Attempts() int {
	return a.attempts
}

// LastAttemptAt returns the UTC timestamp of the most recent try or update.
func (a *Attempt) LastAttemptAt() time.Time {
	return a.lastAttemptAt
}

// ErrorMessage returns the failure message, if the attempt failed.
func (a *Attempt) ErrorMessage() string {
	return a.errorMessage
}

// CorrelationID returns the correlation id threading this attempt's operation,
// or an empty string when none was supplied.
func (a *Attempt) CorrelationID() string {
	return a.correlationID
}

// IsOpen reports whether the attempt may still be resolved by a confirmation.
func (a *Attempt) IsOpen() bool {
	return a.status.IsOpen()
}

// Touch bumps the last-attempt timestamp to now and adopts the given
// correlation id if it is non-empty, keeping the attempt's own otherwise.
// Asynchronous confirmations call this before resolving the attempt.
func (a *Attempt) Touch(correlationID string) {
	a.lastAttemptAt = time.Now().UTC()
	if correlationID != "" {
		a.correlationID = correlationID
	}
}

// MarkAcked resolves an open attempt as confirmed by the target system,
// storing the serialized response. Returns ErrAttemptAlreadyResolved when the
// attempt is not open.
func (a *Attempt) MarkAcked(responsePayload string) error {
	if !a.IsOpen() {
		return fmt.Errorf("%w: %s", ErrAttemptAlreadyResolved, a.status)
	}

	a.status = Acked
	a.responsePayload = responsePayload
	a.errorMessage = ""
	return nil
}

// MarkFailed resolves an open attempt as rejected by the target system,
// storing the failure message and serialized response. Returns
// ErrAttemptAlreadyResolved when the attempt is not open.
func (a *Attempt) MarkFailed(errorMessage, responsePayload string) error {
	if !a.IsOpen() {
		return fmt.Errorf("%w: %s", ErrAttemptAlreadyResolved, a.status)
	}

	a.status = Failed
	a.errorMessage = errorMessage
	a.responsePayload = responsePayload
	return nil
}

func (a *Attempt) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Attempt) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Attempt) setTarget(target TargetSystem) error {
	if err := target.Validate(); err != nil {
		return err
	}
	a.target = target
	return nil
}

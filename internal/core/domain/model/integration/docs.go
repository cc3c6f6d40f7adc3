// Package integration provides the domain model for tracking hand-offs of
// orders to external systems.
//
// The package includes:
//   - Attempt: One record of trying to deliver an order to a target system
//     and (eventually) learning the outcome
//   - Status: The attempt state machine (Pending -> Sent -> Acked | Failed)
//   - TargetSystem: The external system an attempt is directed at
//
// Attempts reference orders by id but form their own aggregate, queried
// independently. Confirmations arriving asynchronously are correlated to the
// most recently attempted open (Pending or Sent) attempt for the order; there
// is no stronger identifier echoed back by the remote system, so a late
// confirmation for an attempt that a newer attempt already superseded is
// silently ignored.
package integration

package ports

import "context"

// ErpSendResult is the business outcome of delivering an order payload to the
// ERP system. Success is the ERP's acceptance decision, not transport health.
type ErpSendResult struct {
	// Success reports whether the ERP accepted the order.
	Success bool

	// Message carries the ERP's human-readable response, typically a rejection
	// reason when Success is false.
	Message string

	// ErpReference is the identifier assigned by the ERP on acceptance.
	// Empty when Success is false.
	ErpReference string
}

// ErpSender delivers an order payload to the external ERP system.
//
// A non-nil error means the exchange itself failed (transport level) and no
// business outcome is known. A nil error with Success=false means the ERP
// received the payload and rejected the order.
type ErpSender interface {
	Send(ctx context.Context, orderNumber string, payload []byte) (ErpSendResult, error)
}

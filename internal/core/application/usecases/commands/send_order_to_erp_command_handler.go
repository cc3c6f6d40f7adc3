package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/integration"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/core/ports"
)

// ErrErpUnavailable is returned when the exchange with the ERP fails at the
// transport level and no business outcome is known. The recorded attempt stays
// open so a later webhook can still resolve it.
var ErrErpUnavailable = errors.New("erp is unavailable")

// SendOrderToErpResult reports how a send ended when the exchange itself
// succeeded: the attempt's resolved status plus the ERP's response fields.
type SendOrderToErpResult struct {
	AttemptID     kernel.UUID
	OrderID       kernel.UUID
	OrderNumber   string
	AttemptStatus integration.Status
	ErpReference  string
	Message       string
	SentAt        time.Time
}

// SendOrderToErpCommandHandler forwards an order to the ERP system.
//
// Every handling creates a new integration attempt carrying a snapshot of the
// order taken at send time. The Sent attempt is committed before the exchange,
// so a crash mid-call still leaves a durable record that the order was handed
// off. The synchronous ERP response then resolves the attempt to Acked or
// Failed and records the matching audit event; a transport error leaves the
// attempt open (Sent) for webhook reconciliation and surfaces
// ErrErpUnavailable.
type SendOrderToErpCommandHandler struct {
	uowFactory IntegrationUoWFactory
	erpSender  ports.ErpSender
}

// NewSendOrderToErpCommandHandler creates a handler for ERP send operations.
// Requires an IntegrationUoWFactory for transactional persistence and an
// ErpSender for the actual exchange.
func NewSendOrderToErpCommandHandler(
	uowFactory IntegrationUoWFactory,
	erpSender ports.ErpSender,
) SendOrderToErpCommandHandler {
	return SendOrderToErpCommandHandler{
		uowFactory: uowFactory,
		erpSender:  erpSender,
	}
}

// Handle processes the send command and returns the outcome of the attempt.
func (h *SendOrderToErpCommandHandler) Handle(
	ctx context.Context,
	cmd SendOrderToErpCommand,
) (SendOrderToErpResult, error) {
	if err := cmd.Validate(); err != nil {
		return SendOrderToErpResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SendOrderToErpResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return SendOrderToErpResult{}, err
	}

	payload, err := marshalErpPayload(aggregate)
	if err != nil {
		return SendOrderToErpResult{}, err
	}

	attempt, err := integration.NewSentAttempt(
		kernel.NewUUID(), aggregate.ID(), integration.TargetErp, string(payload), cmd.CorrelationID(),
	)
	if err != nil {
		return SendOrderToErpResult{}, err
	}

	// The Sent attempt must be durable before the external call: if the
	// process dies mid-exchange the ERP may have received the order, and a
	// later webhook needs an open attempt to resolve.
	if err = uow.AttemptRepository().Add(ctx, attempt); err != nil {
		return SendOrderToErpResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return SendOrderToErpResult{}, err
	}

	sendResult, sendErr := h.erpSender.Send(ctx, aggregate.OrderNumber(), payload)
	if sendErr != nil {
		// No outcome is known; the committed attempt stays open for a later
		// webhook to resolve.
		return SendOrderToErpResult{}, fmt.Errorf("%w: %w", ErrErpUnavailable, sendErr)
	}

	responsePayload, err := marshalErpResponse(sendResult)
	if err != nil {
		return SendOrderToErpResult{}, err
	}

	var eventKind audit.Kind
	if sendResult.Success {
		eventKind = audit.ErpAck
		err = attempt.MarkAcked(responsePayload)
	} else {
		eventKind = audit.ErpFail
		err = attempt.MarkFailed(sendResult.Message, responsePayload)
	}
	if err != nil {
		return SendOrderToErpResult{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return SendOrderToErpResult{}, err
	}

	if err = uow.AttemptRepository().Update(ctx, attempt); err != nil {
		return SendOrderToErpResult{}, err
	}

	event, err := audit.NewEvent(
		kernel.NewUUID(), audit.EntityTypeOrder, aggregate.ID(), eventKind,
		responsePayload, cmd.Actor(), cmd.CorrelationID(),
	)
	if err != nil {
		return SendOrderToErpResult{}, err
	}

	if err = uow.AuditRepository().Append(ctx, event); err != nil {
		return SendOrderToErpResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SendOrderToErpResult{}, err
	}

	return SendOrderToErpResult{
		AttemptID:     attempt.ID(),
		OrderID:       aggregate.ID(),
		OrderNumber:   aggregate.OrderNumber(),
		AttemptStatus: attempt.Status(),
		ErpReference:  sendResult.ErpReference,
		Message:       sendResult.Message,
		SentAt:        attempt.LastAttemptAt(),
	}, nil
}

type erpPayloadItem struct {
	Sku         string `json:"sku"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

type erpPayload struct {
	OrderID      string           `json:"orderId"`
	OrderNumber  string           `json:"orderNumber"`
	CustomerCode string           `json:"customerCode"`
	Status       string           `json:"status"`
	TotalAmount  string           `json:"totalAmount"`
	Items        []erpPayloadItem `json:"items"`
	SentAt       time.Time        `json:"sentAt"`
}

// marshalErpPayload serializes the order snapshot actually transmitted to the
// ERP. The snapshot is stored on the attempt, so it must be self-contained.
func marshalErpPayload(o *order.Order) ([]byte, error) {
	items := make([]erpPayloadItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, erpPayloadItem{
			Sku:         item.Sku(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().String(),
			LineTotal:   item.LineTotal().String(),
		})
	}

	return json.Marshal(erpPayload{
		OrderID:      o.ID().String(),
		OrderNumber:  o.OrderNumber(),
		CustomerCode: o.CustomerCode(),
		Status:       o.Status().String(),
		TotalAmount:  o.TotalAmount().String(),
		Items:        items,
		SentAt:       time.Now().UTC(),
	})
}

// erpResponsePayload is the stored record of how an attempt was resolved,
// either by the synchronous response or by a webhook.
type erpResponsePayload struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message,omitempty"`
	ErpReference string     `json:"erpReference,omitempty"`
	Source       string     `json:"source,omitempty"`
	AckedAt      *time.Time `json:"ackedAt,omitempty"`
	FailedAt     *time.Time `json:"failedAt,omitempty"`
}

func marshalErpResponse(result ports.ErpSendResult) (string, error) {
	payload := erpResponsePayload{
		Success:      result.Success,
		Message:      result.Message,
		ErpReference: result.ErpReference,
	}
	payload.stampResolution(result.Success)

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (p *erpResponsePayload) stampResolution(success bool) {
	resolvedAt := time.Now().UTC()
	if success {
		p.AckedAt = &resolvedAt
	} else {
		p.FailedAt = &resolvedAt
	}
}

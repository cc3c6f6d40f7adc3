package commands

import (
	"context"
	"encoding/json"
	"errors"

	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/errs"
)

// WebhookActor marks audit events produced by asynchronous ERP confirmations
// rather than by an API caller.
const WebhookActor = "webhook"

// ProcessErpWebhookResult reports whether a webhook notification resolved an
// attempt. Notifications that match nothing are not errors: the ERP may
// confirm orders this system never sent, or confirm the same send twice.
type ProcessErpWebhookResult struct {
	Processed bool
	Reason    string
	AttemptID kernel.UUID
}

// ProcessErpWebhookCommandHandler reconciles asynchronous ERP confirmations
// with open integration attempts.
//
// The confirmation resolves the most recently attempted open attempt of the
// order it names. An unknown order or an order without open attempts yields a
// not-processed result instead of an error, so the webhook endpoint can always
// acknowledge receipt.
type ProcessErpWebhookCommandHandler struct {
	uowFactory IntegrationUoWFactory
}

// NewProcessErpWebhookCommandHandler creates a handler for webhook reconciliation.
// Requires an IntegrationUoWFactory for transactional persistence.
func NewProcessErpWebhookCommandHandler(uowFactory IntegrationUoWFactory) ProcessErpWebhookCommandHandler {
	return ProcessErpWebhookCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the webhook command and reports whether an attempt was resolved.
func (h *ProcessErpWebhookCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessErpWebhookCommand,
) (ProcessErpWebhookResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessErpWebhookResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProcessErpWebhookResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByOrderNumber(ctx, cmd.OrderNumber())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ProcessErpWebhookResult{Reason: "order not found"}, nil
		}
		return ProcessErpWebhookResult{}, err
	}

	openAttempts, err := uow.AttemptRepository().FindOpenForOrder(ctx, aggregate.ID())
	if err != nil {
		return ProcessErpWebhookResult{}, err
	}
	if len(openAttempts) == 0 {
		return ProcessErpWebhookResult{Reason: "no open integration attempt"}, nil
	}

	// Most recently attempted open attempt wins.
	attempt := openAttempts[0]
	attempt.Touch(cmd.CorrelationID())

	responsePayload, err := marshalWebhookResponse(cmd)
	if err != nil {
		return ProcessErpWebhookResult{}, err
	}

	var eventKind audit.Kind
	if cmd.Success() {
		eventKind = audit.ErpAck
		err = attempt.MarkAcked(responsePayload)
	} else {
		eventKind = audit.ErpFail
		err = attempt.MarkFailed(cmd.Message(), responsePayload)
	}
	if err != nil {
		return ProcessErpWebhookResult{}, err
	}

	if err = uow.AttemptRepository().Update(ctx, attempt); err != nil {
		return ProcessErpWebhookResult{}, err
	}

	event, err := audit.NewEvent(
		kernel.NewUUID(), audit.EntityTypeOrder, aggregate.ID(), eventKind,
		responsePayload, WebhookActor, attempt.CorrelationID(),
	)
	if err != nil {
		return ProcessErpWebhookResult{}, err
	}

	if err = uow.AuditRepository().Append(ctx, event); err != nil {
		return ProcessErpWebhookResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ProcessErpWebhookResult{}, err
	}

	return ProcessErpWebhookResult{Processed: true, AttemptID: attempt.ID()}, nil
}

func marshalWebhookResponse(cmd ProcessErpWebhookCommand) (string, error) {
	payload := erpResponsePayload{
		Success:      cmd.Success(),
		Message:      cmd.Message(),
		ErpReference: cmd.ErpReference(),
		Source:       WebhookActor,
	}
	payload.stampResolution(cmd.Success())

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

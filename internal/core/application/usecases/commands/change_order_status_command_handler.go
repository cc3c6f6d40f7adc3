package commands

import (
	"context"
	"encoding/json"

	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler handles order status transitions.
// The order aggregate enforces the state machine; the handler loads, mutates,
// persists, and records a StatusChanged audit event in the same transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for status transition operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
// A rejected transition surfaces the *order.InvalidTransitionError from the
// aggregate and leaves the order untouched.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	previousStatus := aggregate.Status()
	if err = aggregate.ChangeStatus(cmd.NewStatus()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := newStatusChangedEvent(aggregate, previousStatus, cmd.Actor(), cmd.CorrelationID())
	if err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func newStatusChangedEvent(o *order.Order, from order.Status, actor, correlationID string) (*audit.Event, error) {
	data, err := json.Marshal(struct {
		OrderNumber string `json:"orderNumber"`
		From        string `json:"from"`
		To          string `json:"to"`
	}{
		OrderNumber: o.OrderNumber(),
		From:        from.String(),
		To:          o.Status().String(),
	})
	if err != nil {
		return nil, err
	}

	return audit.NewEvent(
		kernel.NewUUID(), audit.EntityTypeOrder, o.ID(), audit.StatusChanged,
		string(data), actor, correlationID,
	)
}

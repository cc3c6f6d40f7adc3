package commands

import (
	"context"
	"encoding/json"

	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new orders in "Created" status and records an OrderCreated audit
// event in the same transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "ORD-1001", "CUST-7", items, "", "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now created and ready for status changes and ERP sends
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Rejects duplicate order numbers with an ObjectAlreadyExistsError, then
// persists the order together with its OrderCreated audit event so neither is
// visible without the other.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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
	exists, err := orderRepo.ExistsByOrderNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewObjectAlreadyExistsError("order number", cmd.OrderNumber())
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.OrderNumber(), cmd.CustomerCode(), cmd.Items())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	event, err := newCreatedEvent(newOrder, cmd.Actor(), cmd.CorrelationID())
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

func newCreatedEvent(o *order.Order, actor, correlationID string) (*audit.Event, error) {
	data, err := json.Marshal(struct {
		OrderNumber  string `json:"orderNumber"`
		CustomerCode string `json:"customerCode"`
		Status       string `json:"status"`
		TotalAmount  string `json:"totalAmount"`
		ItemCount    int    `json:"itemCount"`
	}{
		OrderNumber:  o.OrderNumber(),
		CustomerCode: o.CustomerCode(),
		Status:       o.Status().String(),
		TotalAmount:  o.TotalAmount().String(),
		ItemCount:    len(o.Items()),
	})
	if err != nil {
		return nil, err
	}

	return audit.NewEvent(
		kernel.NewUUID(), audit.EntityTypeOrder, o.ID(), audit.OrderCreated,
		string(data), actor, correlationID,
	)
}

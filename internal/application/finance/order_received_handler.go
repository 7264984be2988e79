package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/procure/backend/internal/domain/finance"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderReceivedHandler opens a vendor payable when a purchase order has been
// fully received. Partial receipts are ignored; the payable covers the full
// order amount once everything arrived.
type OrderReceivedHandler struct {
	payableRepo finance.VendorPayableRepository
	logger      *zap.Logger
}

// NewOrderReceivedHandler creates a new OrderReceivedHandler
func NewOrderReceivedHandler(payableRepo finance.VendorPayableRepository, logger *zap.Logger) *OrderReceivedHandler {
	return &OrderReceivedHandler{
		payableRepo: payableRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderReceivedHandler) EventTypes() []string {
	return []string{procurement.EventTypePurchaseOrderReceived}
}

// Handle processes a PurchaseOrderReceivedEvent
func (h *OrderReceivedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	receivedEvent, ok := event.(*procurement.PurchaseOrderReceivedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", procurement.EventTypePurchaseOrderReceived),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			procurement.EventTypePurchaseOrderReceived, event.EventType())
	}

	if !receivedEvent.FullyReceived {
		return nil
	}

	// One payable per order
	existing, err := h.payableRepo.FindByOrder(ctx, receivedEvent.OrderID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil {
		h.logger.Debug("payable already open for order",
			zap.String("order_number", receivedEvent.OrderNumber),
		)
		return nil
	}

	payable, err := finance.NewVendorPayable(
		receivedEvent.VendorID,
		receivedEvent.VendorName,
		receivedEvent.OrderID,
		receivedEvent.OrderNumber,
		receivedEvent.TotalAmount,
		receivedEvent.DeliveryDate,
		receivedEvent.PaymentTerms,
	)
	if err != nil {
		return err
	}

	if err := h.payableRepo.Save(ctx, payable); err != nil {
		h.logger.Error("failed to save vendor payable",
			zap.String("order_number", receivedEvent.OrderNumber),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("vendor payable opened",
		zap.String("order_number", receivedEvent.OrderNumber),
		zap.String("vendor", receivedEvent.VendorName),
		zap.String("amount", receivedEvent.TotalAmount.String()),
		zap.Time("due_date", payable.DueDate),
	)

	return nil
}

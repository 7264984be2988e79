package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// defaultReceiptKeyTTL bounds how long a processed idempotency key blocks replays
const defaultReceiptKeyTTL = 24 * time.Hour

// ReceivingService reconciles deliveries against purchase orders: it persists
// received quantities and batch data, resolves the order status, applies stock
// deltas and raises the received event
type ReceivingService struct {
	orderRepo      procurement.PurchaseOrderRepository
	stockAdjuster  *StockAdjuster
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(orderRepo procurement.PurchaseOrderRepository, stockAdjuster *StockAdjuster, logger *zap.Logger) *ReceivingService {
	return &ReceivingService{
		orderRepo:      orderRepo,
		stockAdjuster:  stockAdjuster,
		idempotencyTTL: defaultReceiptKeyTTL,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReceivingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore enables duplicate-submission detection for receipts
func (s *ReceivingService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetIdempotencyTTL overrides how long processed receipt keys are retained
func (s *ReceivingService) SetIdempotencyTTL(ttl time.Duration) {
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// Receive processes a delivery against the order. Item updates, the actual
// delivery date and the status decision are persisted in one transaction;
// stock deltas are applied afterwards and surface as warnings on failure.
func (s *ReceivingService) Receive(ctx context.Context, orderID uuid.UUID, req ReceiveRequest) (*ReceiveResultResponse, error) {
	if err := s.checkIdempotencyKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	infos, err := order.ApplyReceipt(toReceiveLines(req.Lines), req.DeliveryDate)
	if err != nil {
		return nil, err
	}

	events := order.GetDomainEvents()
	order.ClearDomainEvents()

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	warnings := overReceiptWarnings(infos)
	warnings = append(warnings, s.stockAdjuster.Apply(ctx, order.OrderNumber, infos)...)

	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish receiving events",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("receiving processed",
		zap.String("order_number", order.OrderNumber),
		zap.Int("lines", len(infos)),
		zap.Bool("fully_received", order.AllItemsReceived()),
		zap.String("status", order.Status.String()),
	)

	return &ReceiveResultResponse{
		Order:          ToPurchaseOrderResponse(order),
		FullyReceived:  order.AllItemsReceived(),
		ProcessedCount: len(infos),
		Warnings:       warnings,
	}, nil
}

// BatchReceive persists receipt data for the given lines without resolving the
// order status. Stock deltas are still applied.
func (s *ReceivingService) BatchReceive(ctx context.Context, orderID uuid.UUID, req ReceiveRequest) (*ReceiveResultResponse, error) {
	if err := s.checkIdempotencyKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	infos, err := order.RecordReceiptLines(toReceiveLines(req.Lines), req.DeliveryDate)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	warnings := overReceiptWarnings(infos)
	warnings = append(warnings, s.stockAdjuster.Apply(ctx, order.OrderNumber, infos)...)

	s.logger.Info("batch receiving processed",
		zap.String("order_number", order.OrderNumber),
		zap.Int("lines", len(infos)),
	)

	return &ReceiveResultResponse{
		Order:          ToPurchaseOrderResponse(order),
		FullyReceived:  order.AllItemsReceived(),
		ProcessedCount: len(infos),
		Warnings:       warnings,
	}, nil
}

// checkIdempotencyKey rejects replayed receipt submissions. Store failures
// are logged and ignored so the store never blocks receiving.
func (s *ReceivingService) checkIdempotencyKey(ctx context.Context, key string) error {
	if key == "" || s.idempotency == nil {
		return nil
	}

	fresh, err := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
	if err != nil {
		s.logger.Warn("idempotency store unavailable, skipping replay check",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	if !fresh {
		return shared.ErrDuplicateReceipt
	}
	return nil
}

func toReceiveLines(inputs []ReceiveLineInput) []procurement.ReceiveLine {
	lines := make([]procurement.ReceiveLine, len(inputs))
	for i, in := range inputs {
		lines[i] = procurement.ReceiveLine{
			ItemID:            in.ItemID,
			ReceivedQuantity:  in.ReceivedQuantity,
			BatchNumber:       in.BatchNumber,
			ExpiryDate:        in.ExpiryDate,
			WarehouseLocation: in.WarehouseLocation,
		}
	}
	return lines
}

func overReceiptWarnings(infos []procurement.ReceivedLineInfo) []string {
	var warnings []string
	for _, info := range infos {
		if info.OverReceipt {
			warnings = append(warnings, fmt.Sprintf("item %s received %s beyond its ordered quantity", info.ItemID, info.Quantity))
		}
	}
	return warnings
}

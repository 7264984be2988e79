package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRepository defines the persistence contract for purchase orders
// and their line items
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts purchase orders in the given status
	CountByStatus(ctx context.Context, status PurchaseOrderStatus) (int64, error)

	// FindItem finds a single line item by ID
	FindItem(ctx context.Context, itemID uuid.UUID) (*PurchaseLineItem, error)

	// FindItemsByOrder finds all line items of an order
	FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]PurchaseLineItem, error)

	// Save creates or updates a purchase order together with its line items
	Save(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock saves with optimistic locking (version check); the order,
	// its line items and totals are written in one transaction
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error

	// Delete removes a purchase order and cascades to its line items
	Delete(ctx context.Context, id uuid.UUID) error

	// GenerateOrderNumber generates the next order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// ProductStockRepository applies stock deltas to catalog products.
// The product catalog itself is owned elsewhere; this contract only covers
// the additive adjustment receiving needs.
type ProductStockRepository interface {
	// IncrementStock atomically adds delta to the product's stock level
	// Returns shared.ErrNotFound when no such product exists
	IncrementStock(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) error
}

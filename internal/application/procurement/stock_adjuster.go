package procurement

import (
	"context"
	"fmt"

	"github.com/procure/backend/internal/domain/procurement"
	"go.uber.org/zap"
)

// StockAdjuster applies stock deltas for received purchase order lines.
// Adjustments are a secondary effect of receiving: per-line failures are
// logged and reported as warnings, never escalated to the caller.
type StockAdjuster struct {
	stockRepo procurement.ProductStockRepository
	logger    *zap.Logger
}

// NewStockAdjuster creates a new StockAdjuster
func NewStockAdjuster(stockRepo procurement.ProductStockRepository, logger *zap.Logger) *StockAdjuster {
	return &StockAdjuster{
		stockRepo: stockRepo,
		logger:    logger,
	}
}

// Apply increments product stock for each received line and returns warnings
// for lines that could not be applied. Lines without a product are skipped.
func (a *StockAdjuster) Apply(ctx context.Context, orderNumber string, lines []procurement.ReceivedLineInfo) []string {
	var warnings []string
	applied := 0

	for _, line := range lines {
		if line.ProductID == nil {
			continue
		}
		if line.Quantity.IsZero() {
			continue
		}

		if err := a.stockRepo.IncrementStock(ctx, *line.ProductID, line.Quantity); err != nil {
			a.logger.Warn("failed to adjust stock for received line",
				zap.String("order_number", orderNumber),
				zap.String("item_id", line.ItemID.String()),
				zap.String("product_id", line.ProductID.String()),
				zap.String("quantity", line.Quantity.String()),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("stock adjustment failed for item %s: %s", line.ItemID, err))
			continue
		}
		applied++
	}

	a.logger.Info("stock adjustments applied",
		zap.String("order_number", orderNumber),
		zap.Int("applied", applied),
		zap.Int("failed", len(warnings)),
	)

	return warnings
}

package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestOrder(t *testing.T) *PurchaseOrder {
	order, err := NewPurchaseOrder("PO-2026-00001", uuid.New(), "Acme Supplies", time.Now(), "NET_30")
	require.NoError(t, err)
	return order
}

func addTestItem(t *testing.T, order *PurchaseOrder, description string, quantity, price float64) *PurchaseLineItem {
	productID := uuid.New()
	item, err := order.AddItem(&productID, description, decimal.NewFromFloat(quantity), decimal.NewFromFloat(price))
	require.NoError(t, err)
	return item
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

// ============================================
// PurchaseOrderStatus Tests
// ============================================

func TestPurchaseOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PurchaseOrderStatus
		isValid bool
	}{
		{PurchaseOrderStatusDraft, true},
		{PurchaseOrderStatusSubmitted, true},
		{PurchaseOrderStatusConfirmed, true},
		{PurchaseOrderStatusReceived, true},
		{PurchaseOrderStatusCompleted, true},
		{PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatus("INVALID"), false},
		{PurchaseOrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPurchaseOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     PurchaseOrderStatus
		to       PurchaseOrderStatus
		canTrans bool
	}{
		// From DRAFT
		{PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusConfirmed, false},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusReceived, false},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCompleted, false},
		// From SUBMITTED
		{PurchaseOrderStatusSubmitted, PurchaseOrderStatusConfirmed, true},
		{PurchaseOrderStatusSubmitted, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusSubmitted, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusSubmitted, PurchaseOrderStatusReceived, false},
		// From CONFIRMED
		{PurchaseOrderStatusConfirmed, PurchaseOrderStatusReceived, true},
		{PurchaseOrderStatusConfirmed, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusConfirmed, PurchaseOrderStatusCompleted, false},
		{PurchaseOrderStatusConfirmed, PurchaseOrderStatusDraft, false},
		// From RECEIVED
		{PurchaseOrderStatusReceived, PurchaseOrderStatusCompleted, true},
		{PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusReceived, PurchaseOrderStatusConfirmed, false},
		// Terminal states
		{PurchaseOrderStatusCompleted, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPurchaseOrderStatus_ReceivingTarget(t *testing.T) {
	assert.Equal(t, PurchaseOrderStatusReceived, PurchaseOrderStatusConfirmed.ReceivingTarget(true))
	assert.Equal(t, PurchaseOrderStatusConfirmed, PurchaseOrderStatusConfirmed.ReceivingTarget(false))
	assert.Equal(t, PurchaseOrderStatusConfirmed, PurchaseOrderStatusDraft.ReceivingTarget(false))
}

func TestPurchaseOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, PurchaseOrderStatusCompleted.IsTerminal())
	assert.True(t, PurchaseOrderStatusCancelled.IsTerminal())
	assert.False(t, PurchaseOrderStatusDraft.IsTerminal())
	assert.False(t, PurchaseOrderStatusReceived.IsTerminal())
}

// ============================================
// PurchaseOrder Tests
// ============================================

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		order := createTestOrder(t)

		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.Equal(t, "PO-2026-00001", order.OrderNumber)
		assert.True(t, order.TotalAmount.IsZero())
		assert.Equal(t, 1, order.GetVersion())
		assert.Len(t, order.GetDomainEvents(), 1)
	})

	t.Run("rejects empty order number", func(t *testing.T) {
		_, err := NewPurchaseOrder("", uuid.New(), "Acme", time.Now(), "")
		assertDomainErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("rejects nil vendor", func(t *testing.T) {
		_, err := NewPurchaseOrder("PO-1", uuid.Nil, "Acme", time.Now(), "")
		assertDomainErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestPurchaseOrder_AddItem(t *testing.T) {
	t.Run("adds item and recalculates totals", func(t *testing.T) {
		order := createTestOrder(t)
		addTestItem(t, order, "Widget", 10, 2.50)
		addTestItem(t, order, "Gadget", 4, 5)

		assert.Equal(t, 2, order.ItemCount())
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(45)), "subtotal = %s", order.Subtotal)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(45)))
	})

	t.Run("returned item aliases the stored item", func(t *testing.T) {
		order := createTestOrder(t)
		item, err := order.AddItem(nil, "Widget", decimal.NewFromInt(2), decimal.NewFromInt(3))
		require.NoError(t, err)

		item.ReceivedQuantity = decimal.NewFromInt(2)

		stored := order.GetItem(item.ID)
		require.NotNil(t, stored)
		assert.True(t, stored.ReceivedQuantity.Equal(decimal.NewFromInt(2)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddItem(nil, "Widget", decimal.Zero, decimal.NewFromInt(1))
		assertDomainErrorCode(t, err, shared.CodeInvalidQuantity)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddItem(nil, "Widget", decimal.NewFromInt(1), decimal.Zero)
		assertDomainErrorCode(t, err, shared.CodeInvalidPrice)
	})

	t.Run("rejects items on non-draft order", func(t *testing.T) {
		order := createTestOrder(t)
		addTestItem(t, order, "Widget", 1, 1)
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusSubmitted))

		_, err := order.AddItem(nil, "Gadget", decimal.NewFromInt(1), decimal.NewFromInt(1))
		assert.ErrorIs(t, err, shared.ErrOrderNotEditable)
	})

	t.Run("allows manual item without product", func(t *testing.T) {
		order := createTestOrder(t)
		item, err := order.AddItem(nil, "Misc freight charge", decimal.NewFromInt(1), decimal.NewFromInt(30))
		require.NoError(t, err)
		assert.Nil(t, item.ProductID)
	})
}

func TestPurchaseOrder_UpdateItem(t *testing.T) {
	t.Run("partial update recalculates totals", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Widget", 10, 2)

		qty := decimal.NewFromInt(5)
		err := order.UpdateItem(item.ID, ItemUpdate{Quantity: &qty})
		require.NoError(t, err)

		updated := order.GetItem(item.ID)
		assert.True(t, updated.Quantity.Equal(qty))
		assert.True(t, updated.TotalPrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, updated.UnitPrice.Equal(decimal.NewFromInt(2)), "untouched fields keep their values")
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects invalid quantity", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Widget", 10, 2)

		qty := decimal.NewFromInt(-1)
		err := order.UpdateItem(item.ID, ItemUpdate{Quantity: &qty})
		assertDomainErrorCode(t, err, shared.CodeInvalidQuantity)
	})

	t.Run("unknown item", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.UpdateItem(uuid.New(), ItemUpdate{})
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("rejects update on non-draft order", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Widget", 10, 2)
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusSubmitted))

		err := order.UpdateItem(item.ID, ItemUpdate{})
		assert.ErrorIs(t, err, shared.ErrOrderNotEditable)
	})
}

func TestPurchaseOrder_RemoveItem(t *testing.T) {
	t.Run("removes item and recalculates totals", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Widget", 10, 2)
		addTestItem(t, order, "Gadget", 1, 5)

		require.NoError(t, order.RemoveItem(item.ID))
		assert.Equal(t, 1, order.ItemCount())
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(5)))
	})

	t.Run("refuses item with receipts", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Widget", 10, 2)
		item.ReceivedQuantity = decimal.NewFromInt(3)

		err := order.RemoveItem(item.ID)
		assert.ErrorIs(t, err, shared.ErrItemAlreadyReceived)
	})

	t.Run("unknown item", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.RemoveItem(uuid.New())
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestPurchaseOrder_UpdateDetails(t *testing.T) {
	order := createTestOrder(t)
	expected := time.Now().AddDate(0, 0, 14)
	terms := "NET_60"

	require.NoError(t, order.UpdateDetails(OrderUpdate{ExpectedDeliveryDate: &expected, PaymentTerms: &terms}))
	assert.Equal(t, "NET_60", order.PaymentTerms)
	require.NotNil(t, order.ExpectedDeliveryDate)
	assert.Equal(t, "", order.Note, "untouched fields keep their values")

	require.NoError(t, order.TransitionTo(PurchaseOrderStatusSubmitted))
	err := order.UpdateDetails(OrderUpdate{PaymentTerms: &terms})
	assert.ErrorIs(t, err, shared.ErrOrderNotEditable)
}

func TestPurchaseOrder_SetTax(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Widget", 10, 2)

	require.NoError(t, order.SetTax(decimal.NewFromFloat(1.5)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(21.5)))

	err := order.SetTax(decimal.NewFromInt(-1))
	assertDomainErrorCode(t, err, shared.CodeInvalidPrice)
}

func TestPurchaseOrder_TransitionTo(t *testing.T) {
	t.Run("full lifecycle", func(t *testing.T) {
		order := createTestOrder(t)
		addTestItem(t, order, "Widget", 1, 1)

		require.NoError(t, order.TransitionTo(PurchaseOrderStatusSubmitted))
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusConfirmed))
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusReceived))
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusCompleted))
		assert.True(t, order.IsTerminal())
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.TransitionTo(PurchaseOrderStatusConfirmed)
		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.TransitionTo(PurchaseOrderStatus("BOGUS"))
		assertDomainErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("terminal states refuse everything", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusCancelled))
		err := order.TransitionTo(PurchaseOrderStatusDraft)
		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})
}

func TestPurchaseOrder_ApplyReceipt(t *testing.T) {
	setup := func(t *testing.T) (*PurchaseOrder, *PurchaseLineItem, *PurchaseLineItem) {
		order := createTestOrder(t)
		first := addTestItem(t, order, "Widget", 10, 2)
		second := addTestItem(t, order, "Gadget", 4, 5)
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusSubmitted))
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusConfirmed))
		return order, first, second
	}

	t.Run("full receipt moves to RECEIVED", func(t *testing.T) {
		order, first, second := setup(t)
		delivery := time.Now()

		infos, err := order.ApplyReceipt([]ReceiveLine{
			{ItemID: first.ID, ReceivedQuantity: decimal.NewFromInt(10), BatchNumber: "B-77"},
			{ItemID: second.ID, ReceivedQuantity: decimal.NewFromInt(4), WarehouseLocation: "A1-03"},
		}, delivery)
		require.NoError(t, err)

		assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
		assert.Len(t, infos, 2)
		require.NotNil(t, order.ActualDeliveryDate)
		assert.Equal(t, "B-77", order.GetItem(first.ID).BatchNumber)
		assert.Equal(t, "A1-03", order.GetItem(second.ID).WarehouseLocation)
	})

	t.Run("partial receipt stays CONFIRMED", func(t *testing.T) {
		order, first, _ := setup(t)

		_, err := order.ApplyReceipt([]ReceiveLine{
			{ItemID: first.ID, ReceivedQuantity: decimal.NewFromInt(3)},
		}, time.Now())
		require.NoError(t, err)

		assert.Equal(t, PurchaseOrderStatusConfirmed, order.Status)
		require.NotNil(t, order.ActualDeliveryDate)
	})

	t.Run("receiving from SUBMITTED skips the confirm step", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Widget", 2, 1)
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusSubmitted))

		_, err := order.ApplyReceipt([]ReceiveLine{
			{ItemID: item.ID, ReceivedQuantity: decimal.NewFromInt(2)},
		}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
	})

	t.Run("over-receipt is flagged, not rejected", func(t *testing.T) {
		order, first, second := setup(t)

		infos, err := order.ApplyReceipt([]ReceiveLine{
			{ItemID: first.ID, ReceivedQuantity: decimal.NewFromInt(15)},
			{ItemID: second.ID, ReceivedQuantity: decimal.NewFromInt(4)},
		}, time.Now())
		require.NoError(t, err)

		assert.True(t, infos[0].OverReceipt)
		assert.False(t, infos[1].OverReceipt)
		assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
	})

	t.Run("negative quantity rejected before any write", func(t *testing.T) {
		order, first, second := setup(t)

		_, err := order.ApplyReceipt([]ReceiveLine{
			{ItemID: first.ID, ReceivedQuantity: decimal.NewFromInt(5)},
			{ItemID: second.ID, ReceivedQuantity: decimal.NewFromInt(-1)},
		}, time.Now())
		assertDomainErrorCode(t, err, shared.CodeInvalidQuantity)
		assert.True(t, order.GetItem(first.ID).ReceivedQuantity.IsZero(), "no partial write")
		assert.Nil(t, order.ActualDeliveryDate)
	})

	t.Run("unknown item rejected before any write", func(t *testing.T) {
		order, first, _ := setup(t)

		_, err := order.ApplyReceipt([]ReceiveLine{
			{ItemID: first.ID, ReceivedQuantity: decimal.NewFromInt(5)},
			{ItemID: uuid.New(), ReceivedQuantity: decimal.NewFromInt(1)},
		}, time.Now())
		assertDomainErrorCode(t, err, "NOT_FOUND")
		assert.True(t, order.GetItem(first.ID).ReceivedQuantity.IsZero())
	})

	t.Run("terminal order refuses receipts", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Widget", 1, 1)
		require.NoError(t, order.TransitionTo(PurchaseOrderStatusCancelled))

		_, err := order.ApplyReceipt([]ReceiveLine{
			{ItemID: item.ID, ReceivedQuantity: decimal.NewFromInt(1)},
		}, time.Now())
		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})

	t.Run("empty lines rejected", func(t *testing.T) {
		order, _, _ := setup(t)
		_, err := order.ApplyReceipt(nil, time.Now())
		assertDomainErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestPurchaseOrder_RecordReceiptLines(t *testing.T) {
	order := createTestOrder(t)
	item := addTestItem(t, order, "Widget", 10, 2)
	require.NoError(t, order.TransitionTo(PurchaseOrderStatusSubmitted))
	require.NoError(t, order.TransitionTo(PurchaseOrderStatusConfirmed))

	infos, err := order.RecordReceiptLines([]ReceiveLine{
		{ItemID: item.ID, ReceivedQuantity: decimal.NewFromInt(10), BatchNumber: "B-1"},
	}, time.Now())
	require.NoError(t, err)

	assert.Len(t, infos, 1)
	assert.Equal(t, PurchaseOrderStatusConfirmed, order.Status, "bulk update leaves status untouched")
	assert.True(t, order.GetItem(item.ID).ReceivedQuantity.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, order.ActualDeliveryDate)
}

func TestPurchaseOrder_RecalculateTotals(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Widget", 10, 2)
	require.NoError(t, order.SetTax(decimal.NewFromInt(3)))

	// Simulate drifted totals
	order.Subtotal = decimal.NewFromInt(999)
	order.TotalAmount = decimal.NewFromInt(999)

	order.RecalculateTotals()
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(23)))

	// Idempotent
	order.RecalculateTotals()
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(23)))
}

func TestPurchaseLineItem_RecordReceipt(t *testing.T) {
	order := createTestOrder(t)
	item := addTestItem(t, order, "Widget", 10, 2)

	over, err := item.RecordReceipt(decimal.NewFromInt(4), "", nil, "")
	require.NoError(t, err)
	assert.False(t, over)
	assert.False(t, item.IsFullyReceived())

	over, err = item.RecordReceipt(decimal.NewFromInt(12), "B-9", nil, "C4")
	require.NoError(t, err)
	assert.True(t, over)
	assert.True(t, item.IsFullyReceived())
	assert.Equal(t, "B-9", item.BatchNumber)

	// Later receipt without batch data keeps earlier tracking fields
	_, err = item.RecordReceipt(decimal.NewFromInt(10), "", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "B-9", item.BatchNumber)
	assert.Equal(t, "C4", item.WarehouseLocation)
}

package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	procureapp "github.com/procure/backend/internal/application/procurement"
	domain "github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/infrastructure/cache"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

// MockProductStockRepository is a mock implementation of ProductStockRepository
type MockProductStockRepository struct {
	mock.Mock
}

func (m *MockProductStockRepository) IncrementStock(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, productID, delta)
	return args.Error(0)
}

func newReceivingRouter(orderRepo *MockPurchaseOrderRepository, stockRepo *MockProductStockRepository, store shared.IdempotencyStore) *gin.Engine {
	adjuster := procureapp.NewStockAdjuster(stockRepo, zap.NewNop())
	service := procureapp.NewReceivingService(orderRepo, adjuster, zap.NewNop())
	if store != nil {
		service.SetIdempotencyStore(store)
	}
	h := NewReceivingHandler(service)

	r := gin.New()
	orders := r.Group("/purchase-orders")
	orders.POST("/:id/receive", h.Receive)
	orders.POST("/:id/batch-receive", h.BatchReceive)
	return r
}

func newOrderWithProduct(t *testing.T, quantity int64) (*domain.PurchaseOrder, uuid.UUID, uuid.UUID) {
	t.Helper()

	order := newDraftOrder(t)
	productID := uuid.New()
	item, err := order.AddItem(&productID, "Widget", decimal.NewFromInt(quantity), decimal.NewFromInt(10))
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order, item.ID, productID
}

func TestReceivingHandler_Receive(t *testing.T) {
	t.Run("receives full quantity and resolves order", func(t *testing.T) {
		order, itemID, productID := newOrderWithProduct(t, 5)
		orderRepo := new(MockPurchaseOrderRepository)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
		stockRepo := new(MockProductStockRepository)
		stockRepo.On("IncrementStock", mock.Anything, productID, decimal.NewFromInt(5)).Return(nil)

		r := newReceivingRouter(orderRepo, stockRepo, nil)
		w := performJSON(t, r, http.MethodPost, "/purchase-orders/"+order.ID.String()+"/receive", gin.H{
			"delivery_date": time.Now().UTC().Format(time.RFC3339),
			"lines": []gin.H{
				{"item_id": itemID.String(), "received_quantity": 5, "batch_number": "B-100"},
			},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, true, data["fully_received"])
		assert.Equal(t, float64(1), data["processed_count"])

		orderData := data["order"].(map[string]any)
		assert.Equal(t, "RECEIVED", orderData["status"])
		stockRepo.AssertExpectations(t)
	})

	t.Run("reports stock failures as warnings", func(t *testing.T) {
		order, itemID, productID := newOrderWithProduct(t, 5)
		orderRepo := new(MockPurchaseOrderRepository)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
		stockRepo := new(MockProductStockRepository)
		stockRepo.On("IncrementStock", mock.Anything, productID, mock.Anything).Return(shared.ErrNotFound)

		r := newReceivingRouter(orderRepo, stockRepo, nil)
		w := performJSON(t, r, http.MethodPost, "/purchase-orders/"+order.ID.String()+"/receive", gin.H{
			"lines": []gin.H{
				{"item_id": itemID.String(), "received_quantity": 5},
			},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		require.NotEmpty(t, data["warnings"])
	})

	t.Run("rejects replayed idempotency key", func(t *testing.T) {
		order, itemID, _ := newOrderWithProduct(t, 5)
		orderRepo := new(MockPurchaseOrderRepository)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
		stockRepo := new(MockProductStockRepository)
		stockRepo.On("IncrementStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		r := newReceivingRouter(orderRepo, stockRepo, store)

		body := gin.H{
			"lines": []gin.H{
				{"item_id": itemID.String(), "received_quantity": 2},
			},
		}
		path := "/purchase-orders/" + order.ID.String() + "/receive"

		first := performJSONWithHeaders(t, r, http.MethodPost, path, body, map[string]string{"X-Idempotency-Key": "rcpt-42"})
		assert.Equal(t, http.StatusOK, first.Code)

		second := performJSONWithHeaders(t, r, http.MethodPost, path, body, map[string]string{"X-Idempotency-Key": "rcpt-42"})
		assert.Equal(t, http.StatusConflict, second.Code)
		resp := decodeResponse(t, second)
		assert.Equal(t, dto.ErrCodeDuplicateReceipt, resp.Error.Code)
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		order, _, _ := newOrderWithProduct(t, 5)
		orderRepo := new(MockPurchaseOrderRepository)
		stockRepo := new(MockProductStockRepository)

		r := newReceivingRouter(orderRepo, stockRepo, nil)
		w := performJSON(t, r, http.MethodPost, "/purchase-orders/"+order.ID.String()+"/receive", gin.H{
			"lines": []gin.H{},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		orderRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("rejects receiving on cancelled order", func(t *testing.T) {
		order, itemID, _ := newOrderWithProduct(t, 5)
		require.NoError(t, order.TransitionTo(domain.PurchaseOrderStatusCancelled))
		order.ClearDomainEvents()
		orderRepo := new(MockPurchaseOrderRepository)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		stockRepo := new(MockProductStockRepository)

		r := newReceivingRouter(orderRepo, stockRepo, nil)
		w := performJSON(t, r, http.MethodPost, "/purchase-orders/"+order.ID.String()+"/receive", gin.H{
			"lines": []gin.H{
				{"item_id": itemID.String(), "received_quantity": 5},
			},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInvalidTransition, resp.Error.Code)
	})

	t.Run("rejects malformed order ID", func(t *testing.T) {
		r := newReceivingRouter(new(MockPurchaseOrderRepository), new(MockProductStockRepository), nil)
		w := performJSON(t, r, http.MethodPost, "/purchase-orders/garbage/receive", gin.H{
			"lines": []gin.H{{"item_id": uuid.New().String(), "received_quantity": 1}},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReceivingHandler_BatchReceive(t *testing.T) {
	t.Run("records partial receipt without resolving status", func(t *testing.T) {
		order, itemID, productID := newOrderWithProduct(t, 10)
		orderRepo := new(MockPurchaseOrderRepository)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
		stockRepo := new(MockProductStockRepository)
		stockRepo.On("IncrementStock", mock.Anything, productID, decimal.NewFromInt(4)).Return(nil)

		r := newReceivingRouter(orderRepo, stockRepo, nil)
		w := performJSON(t, r, http.MethodPost, "/purchase-orders/"+order.ID.String()+"/batch-receive", gin.H{
			"lines": []gin.H{
				{"item_id": itemID.String(), "received_quantity": 4},
			},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, false, data["fully_received"])

		orderData := data["order"].(map[string]any)
		assert.Equal(t, "DRAFT", orderData["status"])
	})
}

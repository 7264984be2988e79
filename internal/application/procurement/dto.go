package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// ============================================
// Requests
// ============================================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	VendorID             uuid.UUID         `json:"vendor_id"`
	VendorName           string            `json:"vendor_name"`
	PurchaseDate         time.Time         `json:"purchase_date"`
	ExpectedDeliveryDate *time.Time        `json:"expected_delivery_date,omitempty"`
	PaymentTerms         string            `json:"payment_terms,omitempty"`
	Note                 string            `json:"note,omitempty"`
	Tax                  *decimal.Decimal  `json:"tax,omitempty"`
	Items                []CreateItemInput `json:"items"`
}

// CreateItemInput represents an item in the create order request
type CreateItemInput struct {
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdatePurchaseOrderRequest represents a partial update of order header fields
// Nil fields are left unchanged
type UpdatePurchaseOrderRequest struct {
	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date,omitempty"`
	PaymentTerms         *string          `json:"payment_terms,omitempty"`
	Note                 *string          `json:"note,omitempty"`
	Tax                  *decimal.Decimal `json:"tax,omitempty"`
}

// AddItemRequest represents a request to add a line item
type AddItemRequest struct {
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateItemRequest represents a partial update of a line item
type UpdateItemRequest struct {
	Quantity          *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	Description       *string          `json:"description,omitempty"`
	BatchNumber       *string          `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time       `json:"expiry_date,omitempty"`
	WarehouseLocation *string          `json:"warehouse_location,omitempty"`
}

// UpdateStatusRequest represents a manual status transition
type UpdateStatusRequest struct {
	Status procurement.PurchaseOrderStatus `json:"status"`
}

// ReceiveLineInput represents one line of a receiving request
type ReceiveLineInput struct {
	ItemID            uuid.UUID       `json:"item_id"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	WarehouseLocation string          `json:"warehouse_location,omitempty"`
}

// ReceiveRequest represents a receiving operation against an order
type ReceiveRequest struct {
	DeliveryDate   time.Time          `json:"delivery_date"`
	IdempotencyKey string             `json:"idempotency_key,omitempty"`
	Lines          []ReceiveLineInput `json:"lines"`
}

// PurchaseOrderListFilter represents filter options for the order list
type PurchaseOrderListFilter struct {
	Page     int                              `form:"page"`
	PageSize int                              `form:"page_size"`
	OrderBy  string                           `form:"order_by"`
	OrderDir string                           `form:"order_dir"`
	Status   *procurement.PurchaseOrderStatus `form:"status"`
	VendorID *uuid.UUID                       `form:"vendor_id"`
	DateFrom *time.Time                       `form:"date_from"`
	DateTo   *time.Time                       `form:"date_to"`
	Search   string                           `form:"search"`
}

// ============================================
// Responses
// ============================================

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID                   uuid.UUID                       `json:"id"`
	OrderNumber          string                          `json:"order_number"`
	VendorID             uuid.UUID                       `json:"vendor_id"`
	VendorName           string                          `json:"vendor_name"`
	PurchaseDate         time.Time                       `json:"purchase_date"`
	ExpectedDeliveryDate *time.Time                      `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time                      `json:"actual_delivery_date,omitempty"`
	PaymentTerms         string                          `json:"payment_terms,omitempty"`
	Note                 string                          `json:"note,omitempty"`
	Status               procurement.PurchaseOrderStatus `json:"status"`
	Subtotal             decimal.Decimal                 `json:"subtotal"`
	Tax                  decimal.Decimal                 `json:"tax"`
	TotalAmount          decimal.Decimal                 `json:"total_amount"`
	Version              int                             `json:"version"`
	Items                []LineItemResponse              `json:"items"`
	CreatedAt            time.Time                       `json:"created_at"`
	UpdatedAt            time.Time                       `json:"updated_at"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         *uuid.UUID      `json:"product_id,omitempty"`
	Description       string          `json:"description"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	WarehouseLocation string          `json:"warehouse_location,omitempty"`
}

// ReceiveResultResponse represents the outcome of a receiving operation
type ReceiveResultResponse struct {
	Order          PurchaseOrderResponse `json:"order"`
	FullyReceived  bool                  `json:"fully_received"`
	ProcessedCount int                   `json:"processed_count"`
	Warnings       []string              `json:"warnings,omitempty"`
}

// PurchaseOrderStatusSummary represents order counts by status
type PurchaseOrderStatusSummary struct {
	Draft     int64 `json:"draft"`
	Submitted int64 `json:"submitted"`
	Confirmed int64 `json:"confirmed"`
	Received  int64 `json:"received"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

// ToPurchaseOrderResponse converts a domain order to its API representation
func ToPurchaseOrderResponse(order *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]LineItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = LineItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			Description:       item.Description,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			TotalPrice:        item.TotalPrice,
			ReceivedQuantity:  item.ReceivedQuantity,
			BatchNumber:       item.BatchNumber,
			ExpiryDate:        item.ExpiryDate,
			WarehouseLocation: item.WarehouseLocation,
		}
	}

	return PurchaseOrderResponse{
		ID:                   order.ID,
		OrderNumber:          order.OrderNumber,
		VendorID:             order.VendorID,
		VendorName:           order.VendorName,
		PurchaseDate:         order.PurchaseDate,
		ExpectedDeliveryDate: order.ExpectedDeliveryDate,
		ActualDeliveryDate:   order.ActualDeliveryDate,
		PaymentTerms:         order.PaymentTerms,
		Note:                 order.Note,
		Status:               order.Status,
		Subtotal:             order.Subtotal,
		Tax:                  order.Tax,
		TotalAmount:          order.TotalAmount,
		Version:              order.Version,
		Items:                items,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}

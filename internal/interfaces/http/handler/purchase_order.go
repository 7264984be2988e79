package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procureapp "github.com/procure/backend/internal/application/procurement"
	"github.com/procure/backend/internal/domain/procurement"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *procureapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *procureapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		orderService: orderService,
	}
}

// CreatePurchaseOrderRequest represents a request to create a new purchase order
type CreatePurchaseOrderRequest struct {
	VendorID             string                         `json:"vendor_id" binding:"required,uuid"`
	VendorName           string                         `json:"vendor_name" binding:"required,min=1,max=200"`
	PurchaseDate         time.Time                      `json:"purchase_date" binding:"required"`
	ExpectedDeliveryDate *time.Time                     `json:"expected_delivery_date"`
	PaymentTerms         string                         `json:"payment_terms" binding:"omitempty,payment_terms"`
	Note                 string                         `json:"note" binding:"max=2000"`
	Tax                  *float64                       `json:"tax"`
	Items                []CreatePurchaseOrderItemInput `json:"items"`
}

// CreatePurchaseOrderItemInput represents an item in the create order request
type CreatePurchaseOrderItemInput struct {
	ProductID   *string `json:"product_id" binding:"omitempty,uuid"`
	Description string  `json:"description" binding:"required,min=1,max=500"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gte=0"`
}

// UpdatePurchaseOrderRequest represents a request to update order header fields.
// Omitted fields are left unchanged.
type UpdatePurchaseOrderRequest struct {
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	PaymentTerms         *string    `json:"payment_terms" binding:"omitempty,payment_terms"`
	Note                 *string    `json:"note" binding:"omitempty,max=2000"`
	Tax                  *float64   `json:"tax"`
}

// AddPurchaseOrderItemRequest represents a request to add a line item
type AddPurchaseOrderItemRequest struct {
	ProductID   *string `json:"product_id" binding:"omitempty,uuid"`
	Description string  `json:"description" binding:"required,min=1,max=500"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gte=0"`
}

// UpdatePurchaseOrderItemRequest represents a request to update a line item
type UpdatePurchaseOrderItemRequest struct {
	Quantity          *float64   `json:"quantity"`
	UnitPrice         *float64   `json:"unit_price"`
	Description       *string    `json:"description" binding:"omitempty,min=1,max=500"`
	BatchNumber       *string    `json:"batch_number" binding:"omitempty,max=100"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	WarehouseLocation *string    `json:"warehouse_location" binding:"omitempty,max=100"`
}

// UpdatePurchaseOrderStatusRequest represents a manual status transition request
type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PurchaseOrderStatusSummaryResponse represents order counts by status
type PurchaseOrderStatusSummaryResponse struct {
	Draft     int64 `json:"draft"`
	Submitted int64 `json:"submitted"`
	Confirmed int64 `json:"confirmed"`
	Received  int64 `json:"received"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

// Create handles POST /procurement/purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	appReq := procureapp.CreatePurchaseOrderRequest{
		VendorID:             vendorID,
		VendorName:           req.VendorName,
		PurchaseDate:         req.PurchaseDate,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		PaymentTerms:         req.PaymentTerms,
		Note:                 req.Note,
	}

	if req.Tax != nil {
		appReq.Tax = toDecimalPtr(*req.Tax)
	}

	for _, item := range req.Items {
		input := procureapp.CreateItemInput{
			Description: item.Description,
			Quantity:    toDecimal(item.Quantity),
			UnitPrice:   toDecimal(item.UnitPrice),
		}
		if item.ProductID != nil && *item.ProductID != "" {
			productID, err := uuid.Parse(*item.ProductID)
			if err != nil {
				h.BadRequest(c, "Invalid product ID format")
				return
			}
			input.ProductID = &productID
		}
		appReq.Items = append(appReq.Items, input)
	}

	order, err := h.orderService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID handles GET /procurement/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByOrderNumber handles GET /procurement/purchase-orders/number/:order_number
func (h *PurchaseOrderHandler) GetByOrderNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.orderService.GetByOrderNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// List handles GET /procurement/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// bindListFilter parses and validates list query parameters.
// Returns false if a response has already been written.
func (h *PurchaseOrderHandler) bindListFilter(c *gin.Context) (procureapp.PurchaseOrderListFilter, bool) {
	filter := procureapp.PurchaseOrderListFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  c.Query("order_by"),
		OrderDir: c.Query("order_dir"),
		Search:   c.Query("search"),
	}

	if page := c.Query("page"); page != "" {
		if v, err := parsePositiveInt(page); err == nil {
			filter.Page = v
		} else {
			h.BadRequest(c, "Invalid page parameter")
			return filter, false
		}
	}
	if pageSize := c.Query("page_size"); pageSize != "" {
		v, err := parsePositiveInt(pageSize)
		if err != nil || v > 100 {
			h.BadRequest(c, "Invalid page_size parameter (must be 1-100)")
			return filter, false
		}
		filter.PageSize = v
	}

	if status := c.Query("status"); status != "" {
		s := procurement.PurchaseOrderStatus(status)
		if !s.IsValid() {
			h.BadRequest(c, "Invalid status filter")
			return filter, false
		}
		filter.Status = &s
	}

	if vendorID := c.Query("vendor_id"); vendorID != "" {
		id, err := uuid.Parse(vendorID)
		if err != nil {
			h.BadRequest(c, "Invalid vendor ID format")
			return filter, false
		}
		filter.VendorID = &id
	}

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		t, err := time.Parse(time.RFC3339, dateFrom)
		if err != nil {
			h.BadRequest(c, "Invalid date_from (expected RFC 3339)")
			return filter, false
		}
		filter.DateFrom = &t
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		t, err := time.Parse(time.RFC3339, dateTo)
		if err != nil {
			h.BadRequest(c, "Invalid date_to (expected RFC 3339)")
			return filter, false
		}
		filter.DateTo = &t
	}

	return filter, true
}

// Update handles PUT /procurement/purchase-orders/:id
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := procureapp.UpdatePurchaseOrderRequest{
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		PaymentTerms:         req.PaymentTerms,
		Note:                 req.Note,
	}
	if req.Tax != nil {
		appReq.Tax = toDecimalPtr(*req.Tax)
	}

	order, err := h.orderService.Update(c.Request.Context(), orderID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete handles DELETE /procurement/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddItem handles POST /procurement/purchase-orders/:id/items
func (h *PurchaseOrderHandler) AddItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req AddPurchaseOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := procureapp.AddItemRequest{
		Description: req.Description,
		Quantity:    toDecimal(req.Quantity),
		UnitPrice:   toDecimal(req.UnitPrice),
	}
	if req.ProductID != nil && *req.ProductID != "" {
		productID, err := uuid.Parse(*req.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		appReq.ProductID = &productID
	}

	order, err := h.orderService.AddItem(c.Request.Context(), orderID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateItem handles PUT /procurement/purchase-orders/:id/items/:item_id
func (h *PurchaseOrderHandler) UpdateItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req UpdatePurchaseOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := procureapp.UpdateItemRequest{
		Description:       req.Description,
		BatchNumber:       req.BatchNumber,
		ExpiryDate:        req.ExpiryDate,
		WarehouseLocation: req.WarehouseLocation,
	}
	if req.Quantity != nil {
		appReq.Quantity = toDecimalPtr(*req.Quantity)
	}
	if req.UnitPrice != nil {
		appReq.UnitPrice = toDecimalPtr(*req.UnitPrice)
	}

	order, err := h.orderService.UpdateItem(c.Request.Context(), orderID, itemID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// RemoveItem handles DELETE /procurement/purchase-orders/:id/items/:item_id
func (h *PurchaseOrderHandler) RemoveItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateStatus handles POST /procurement/purchase-orders/:id/status
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req UpdatePurchaseOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	status := procurement.PurchaseOrderStatus(req.Status)
	if !status.IsValid() {
		h.BadRequest(c, "Invalid status value")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, procureapp.UpdateStatusRequest{
		Status: status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Recalculate handles POST /procurement/purchase-orders/:id/recalculate
func (h *PurchaseOrderHandler) Recalculate(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Recalculate(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// GetStatusSummary handles GET /procurement/purchase-orders/summary
func (h *PurchaseOrderHandler) GetStatusSummary(c *gin.Context) {
	summary, err := h.orderService.GetStatusSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, PurchaseOrderStatusSummaryResponse{
		Draft:     summary.Draft,
		Submitted: summary.Submitted,
		Confirmed: summary.Confirmed,
		Received:  summary.Received,
		Completed: summary.Completed,
		Cancelled: summary.Cancelled,
		Total:     summary.Total,
	})
}

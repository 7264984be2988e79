package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	procureapp "github.com/procure/backend/internal/application/procurement"
)

// ReceivingHandler handles goods receiving endpoints for purchase orders
type ReceivingHandler struct {
	BaseHandler
	receivingService *procureapp.ReceivingService
}

// NewReceivingHandler creates a new receiving handler
func NewReceivingHandler(receivingService *procureapp.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{receivingService: receivingService}
}

// ReceiveLineRequest represents a single line in a receiving request
type ReceiveLineRequest struct {
	ItemID            string     `json:"item_id" binding:"required,uuid"`
	ReceivedQuantity  float64    `json:"received_quantity" binding:"gte=0"`
	BatchNumber       string     `json:"batch_number" binding:"omitempty,max=100"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	WarehouseLocation string     `json:"warehouse_location" binding:"omitempty,max=100"`
}

// ReceiveRequest represents the request body for receiving goods
type ReceiveRequest struct {
	DeliveryDate   *time.Time           `json:"delivery_date"`
	IdempotencyKey string               `json:"idempotency_key" binding:"omitempty,max=128"`
	Lines          []ReceiveLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// Receive records received quantities against order line items.
// Lines that fail individually are reported as warnings in the result.
func (h *ReceivingHandler) Receive(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	req, ok := h.bindReceiveRequest(c)
	if !ok {
		return
	}

	result, err := h.receivingService.Receive(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// BatchReceive receives all lines atomically; any failing line rejects the batch.
func (h *ReceivingHandler) BatchReceive(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	req, ok := h.bindReceiveRequest(c)
	if !ok {
		return
	}

	result, err := h.receivingService.BatchReceive(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// bindReceiveRequest binds and converts the HTTP receiving payload.
// The X-Idempotency-Key header takes precedence over the body field.
func (h *ReceivingHandler) bindReceiveRequest(c *gin.Context) (procureapp.ReceiveRequest, bool) {
	var body ReceiveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return procureapp.ReceiveRequest{}, false
	}

	deliveryDate := time.Now().UTC()
	if body.DeliveryDate != nil {
		deliveryDate = *body.DeliveryDate
	}

	idempotencyKey := body.IdempotencyKey
	if headerKey := c.GetHeader("X-Idempotency-Key"); headerKey != "" {
		idempotencyKey = headerKey
	}

	lines := make([]procureapp.ReceiveLineInput, 0, len(body.Lines))
	for _, line := range body.Lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			h.BadRequest(c, "Invalid line item ID: "+line.ItemID)
			return procureapp.ReceiveRequest{}, false
		}
		lines = append(lines, procureapp.ReceiveLineInput{
			ItemID:            itemID,
			ReceivedQuantity:  toDecimal(line.ReceivedQuantity),
			BatchNumber:       line.BatchNumber,
			ExpiryDate:        line.ExpiryDate,
			WarehouseLocation: line.WarehouseLocation,
		})
	}

	return procureapp.ReceiveRequest{
		DeliveryDate:   deliveryDate,
		IdempotencyKey: idempotencyKey,
		Lines:          lines,
	}, true
}

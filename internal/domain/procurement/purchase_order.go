package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusSubmitted PurchaseOrderStatus = "SUBMITTED"
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCompleted PurchaseOrderStatus = "COMPLETED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted, PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are allowed from this status
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusCompleted || s == PurchaseOrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// This is the single authority for manual status updates.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusSubmitted || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusSubmitted:
		return target == PurchaseOrderStatusConfirmed || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusConfirmed:
		return target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived:
		return target == PurchaseOrderStatusCompleted
	case PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return false
	}
	return false
}

// ReceivingTarget returns the status a receiving operation lands the order in.
// Receiving is a privileged path: it may move the order from any non-terminal
// status, skipping intermediate manual transitions.
func (s PurchaseOrderStatus) ReceivingTarget(allReceived bool) PurchaseOrderStatus {
	if allReceived {
		return PurchaseOrderStatusReceived
	}
	return PurchaseOrderStatusConfirmed
}

// PurchaseLineItem represents a line item in a purchase order.
// ProductID is nil for manually described items that are not linked
// to a catalog product.
type PurchaseLineItem struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	ProductID         *uuid.UUID
	Description       string
	Quantity          decimal.Decimal
	UnitPrice         decimal.Decimal
	TotalPrice        decimal.Decimal
	ReceivedQuantity  decimal.Decimal
	BatchNumber       string
	ExpiryDate        *time.Time
	WarehouseLocation string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewPurchaseLineItem creates a new purchase line item
func NewPurchaseLineItem(orderID uuid.UUID, productID *uuid.UUID, description string, quantity, unitPrice decimal.Decimal) (*PurchaseLineItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidQuantity, "Quantity must be positive")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidPrice, "Unit price must be positive")
	}

	now := time.Now()
	return &PurchaseLineItem{
		ID:               uuid.New(),
		OrderID:          orderID,
		ProductID:        productID,
		Description:      description,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		TotalPrice:       quantity.Mul(unitPrice),
		ReceivedQuantity: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// UpdateQuantity updates the ordered quantity and recalculates the line total
func (i *PurchaseLineItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidQuantity, "Quantity must be positive")
	}
	i.Quantity = quantity
	i.TotalPrice = i.Quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the line total
func (i *PurchaseLineItem) UpdateUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidPrice, "Unit price must be positive")
	}
	i.UnitPrice = unitPrice
	i.TotalPrice = i.Quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

// RecordReceipt records a delivery for this line: the reported quantity plus
// any batch tracking fields that accompanied it. Returns true when the line
// is now received beyond its ordered quantity.
func (i *PurchaseLineItem) RecordReceipt(quantity decimal.Decimal, batchNumber string, expiryDate *time.Time, location string) (bool, error) {
	if quantity.IsNegative() {
		return false, shared.NewDomainError(shared.CodeInvalidQuantity, "Received quantity cannot be negative")
	}

	i.ReceivedQuantity = quantity
	if batchNumber != "" {
		i.BatchNumber = batchNumber
	}
	if expiryDate != nil {
		i.ExpiryDate = expiryDate
	}
	if location != "" {
		i.WarehouseLocation = location
	}
	i.UpdatedAt = time.Now()

	return i.ReceivedQuantity.GreaterThan(i.Quantity), nil
}

// IsFullyReceived returns true if the received quantity covers the ordered quantity
func (i *PurchaseLineItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.Quantity)
}

// HasReceipts returns true if any quantity has been received against this line
func (i *PurchaseLineItem) HasReceipts() bool {
	return i.ReceivedQuantity.GreaterThan(decimal.Zero)
}

// ReceiveLine represents a single line of a receiving operation
type ReceiveLine struct {
	ItemID            uuid.UUID       `json:"item_id"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	WarehouseLocation string          `json:"warehouse_location,omitempty"`
}

// ItemUpdate carries partial updates for a line item; nil fields are left unchanged
type ItemUpdate struct {
	Quantity          *decimal.Decimal
	UnitPrice         *decimal.Decimal
	Description       *string
	BatchNumber       *string
	ExpiryDate        *time.Time
	WarehouseLocation *string
}

// PurchaseOrder represents a purchase order aggregate root.
// It manages the order lifecycle from draft through receiving to completion.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber          string
	VendorID             uuid.UUID
	VendorName           string
	PurchaseDate         time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	PaymentTerms         string
	Note                 string
	Items                []PurchaseLineItem
	Subtotal             decimal.Decimal
	Tax                  decimal.Decimal
	TotalAmount          decimal.Decimal
	Status               PurchaseOrderStatus
}

// NewPurchaseOrder creates a new purchase order in draft status
func NewPurchaseOrder(orderNumber string, vendorID uuid.UUID, vendorName string, purchaseDate time.Time, paymentTerms string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Vendor name cannot be empty")
	}
	if purchaseDate.IsZero() {
		return nil, shared.NewDomainError(shared.CodeInvalidDate, "Purchase date is required")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		VendorID:          vendorID,
		VendorName:        vendorName,
		PurchaseDate:      purchaseDate,
		PaymentTerms:      paymentTerms,
		Items:             make([]PurchaseLineItem, 0),
		Subtotal:          decimal.Zero,
		Tax:               decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            PurchaseOrderStatusDraft,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new line item to the order
// Only allowed in DRAFT status
func (o *PurchaseOrder) AddItem(productID *uuid.UUID, description string, quantity, unitPrice decimal.Decimal) (*PurchaseLineItem, error) {
	if !o.CanModify() {
		return nil, shared.ErrOrderNotEditable
	}

	item, err := NewPurchaseLineItem(o.ID, productID, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.Touch()
	o.IncrementVersion()

	// Return a pointer into the slice so callers mutate the stored item
	return &o.Items[len(o.Items)-1], nil
}

// UpdateItem applies a partial update to an existing line item
// Only allowed in DRAFT status
func (o *PurchaseOrder) UpdateItem(itemID uuid.UUID, update ItemUpdate) error {
	if !o.CanModify() {
		return shared.ErrOrderNotEditable
	}

	item := o.GetItem(itemID)
	if item == nil {
		return shared.NewDomainError("NOT_FOUND", "Order item not found")
	}

	if update.Quantity != nil {
		if err := item.UpdateQuantity(*update.Quantity); err != nil {
			return err
		}
	}
	if update.UnitPrice != nil {
		if err := item.UpdateUnitPrice(*update.UnitPrice); err != nil {
			return err
		}
	}
	if update.Description != nil {
		if *update.Description == "" {
			return shared.NewDomainError("VALIDATION_ERROR", "Item description cannot be empty")
		}
		item.Description = *update.Description
	}
	if update.BatchNumber != nil {
		item.BatchNumber = *update.BatchNumber
	}
	if update.ExpiryDate != nil {
		item.ExpiryDate = update.ExpiryDate
	}
	if update.WarehouseLocation != nil {
		item.WarehouseLocation = *update.WarehouseLocation
	}
	item.UpdatedAt = time.Now()

	o.recalculateTotals()
	o.Touch()
	o.IncrementVersion()

	return nil
}

// RemoveItem removes a line item from the order
// Only allowed in DRAFT status; lines with recorded receipts cannot be removed
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if !o.CanModify() {
		return shared.ErrOrderNotEditable
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if o.Items[idx].HasReceipts() {
				return shared.ErrItemAlreadyReceived
			}
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Order item not found")
}

// OrderUpdate carries partial updates for order header fields
type OrderUpdate struct {
	ExpectedDeliveryDate *time.Time
	PaymentTerms         *string
	Note                 *string
}

// UpdateDetails applies a partial update to order header fields
// Only allowed in DRAFT status
func (o *PurchaseOrder) UpdateDetails(update OrderUpdate) error {
	if !o.CanModify() {
		return shared.ErrOrderNotEditable
	}

	if update.ExpectedDeliveryDate != nil {
		o.ExpectedDeliveryDate = update.ExpectedDeliveryDate
	}
	if update.PaymentTerms != nil {
		o.PaymentTerms = *update.PaymentTerms
	}
	if update.Note != nil {
		o.Note = *update.Note
	}
	o.Touch()
	o.IncrementVersion()

	return nil
}

// SetTax sets the order tax amount
// Only allowed in DRAFT status
func (o *PurchaseOrder) SetTax(tax decimal.Decimal) error {
	if !o.CanModify() {
		return shared.ErrOrderNotEditable
	}
	if tax.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidPrice, "Tax cannot be negative")
	}

	o.Tax = tax
	o.recalculateTotals()
	o.Touch()
	o.IncrementVersion()

	return nil
}

// TransitionTo moves the order to the target status via the state machine
func (o *PurchaseOrder) TransitionTo(target PurchaseOrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderStatusChangedEvent(o, from, target))

	return nil
}

// ApplyReceipt records a receiving operation across the given lines, stamps the
// actual delivery date and resolves the order status: RECEIVED when every line
// is covered, CONFIRMED otherwise. Terminal orders refuse receipts.
func (o *PurchaseOrder) ApplyReceipt(lines []ReceiveLine, deliveryDate time.Time) ([]ReceivedLineInfo, error) {
	if o.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot receive goods for order in %s status", o.Status))
	}

	infos, err := o.applyReceiptLines(lines, deliveryDate)
	if err != nil {
		return nil, err
	}

	from := o.Status
	o.Status = o.Status.ReceivingTarget(o.AllItemsReceived())
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o, from, infos))

	return infos, nil
}

// RecordReceiptLines persists receipt data for the given lines without
// resolving the order status. Used by bulk updates that only carry item data.
func (o *PurchaseOrder) RecordReceiptLines(lines []ReceiveLine, deliveryDate time.Time) ([]ReceivedLineInfo, error) {
	if o.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot receive goods for order in %s status", o.Status))
	}

	infos, err := o.applyReceiptLines(lines, deliveryDate)
	if err != nil {
		return nil, err
	}

	o.Touch()
	o.IncrementVersion()

	return infos, nil
}

func (o *PurchaseOrder) applyReceiptLines(lines []ReceiveLine, deliveryDate time.Time) ([]ReceivedLineInfo, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Receive lines cannot be empty")
	}
	if deliveryDate.IsZero() {
		return nil, shared.NewDomainError(shared.CodeInvalidDate, "Delivery date is required")
	}

	// Validate every line before mutating anything
	for _, line := range lines {
		if line.ReceivedQuantity.IsNegative() {
			return nil, shared.NewDomainError(shared.CodeInvalidQuantity, fmt.Sprintf("Received quantity for item %s cannot be negative", line.ItemID))
		}
		if o.GetItem(line.ItemID) == nil {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Item %s not found in order", line.ItemID))
		}
	}

	infos := make([]ReceivedLineInfo, 0, len(lines))
	for _, line := range lines {
		item := o.GetItem(line.ItemID)
		over, err := item.RecordReceipt(line.ReceivedQuantity, line.BatchNumber, line.ExpiryDate, line.WarehouseLocation)
		if err != nil {
			return nil, err
		}
		infos = append(infos, ReceivedLineInfo{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    line.ReceivedQuantity,
			OverReceipt: over,
		})
	}

	o.ActualDeliveryDate = &deliveryDate

	return infos, nil
}

// RecalculateTotals recomputes the order totals from the current line items.
// Safe to call repeatedly; tax is left untouched.
func (o *PurchaseOrder) RecalculateTotals() {
	o.recalculateTotals()
	o.Touch()
}

func (o *PurchaseOrder) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Add(o.Tax)
}

// AllItemsReceived checks if every line is received at or beyond its ordered quantity
func (o *PurchaseOrder) AllItemsReceived() bool {
	for _, item := range o.Items {
		if !item.IsFullyReceived() {
			return false
		}
	}
	return len(o.Items) > 0
}

// HasReceipts returns true if any line has a recorded receipt
func (o *PurchaseOrder) HasReceipts() bool {
	for _, item := range o.Items {
		if item.HasReceipts() {
			return true
		}
	}
	return false
}

// GetItem returns a line item by its ID, or nil when absent
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseLineItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of line items in the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// IsDraft returns true if the order is in draft status
func (o *PurchaseOrder) IsDraft() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// IsTerminal returns true if the order is completed or cancelled
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// CanModify returns true if the order structure can still be edited
func (o *PurchaseOrder) CanModify() bool {
	return o.IsDraft()
}

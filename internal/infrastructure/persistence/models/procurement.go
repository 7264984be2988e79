package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AggregateModel
	OrderNumber          string                          `gorm:"type:varchar(50);not null;uniqueIndex"`
	VendorID             uuid.UUID                       `gorm:"type:uuid;not null;index"`
	VendorName           string                          `gorm:"type:varchar(200);not null"`
	PurchaseDate         time.Time                       `gorm:"not null;index"`
	ExpectedDeliveryDate *time.Time                      ``
	ActualDeliveryDate   *time.Time                      ``
	PaymentTerms         string                          `gorm:"type:varchar(50)"`
	Note                 string                          `gorm:"type:text"`
	Items                []PurchaseLineItemModel         `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal             decimal.Decimal                 `gorm:"type:decimal(18,4);not null;default:0"`
	Tax                  decimal.Decimal                 `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount          decimal.Decimal                 `gorm:"type:decimal(18,4);not null;default:0"`
	Status               procurement.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) ToDomain() *procurement.PurchaseOrder {
	order := &procurement.PurchaseOrder{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		OrderNumber:          m.OrderNumber,
		VendorID:             m.VendorID,
		VendorName:           m.VendorName,
		PurchaseDate:         m.PurchaseDate,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		ActualDeliveryDate:   m.ActualDeliveryDate,
		PaymentTerms:         m.PaymentTerms,
		Note:                 m.Note,
		Subtotal:             m.Subtotal,
		Tax:                  m.Tax,
		TotalAmount:          m.TotalAmount,
		Status:               m.Status,
		Items:                make([]procurement.PurchaseLineItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) FromDomain(o *procurement.PurchaseOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.VendorID = o.VendorID
	m.VendorName = o.VendorName
	m.PurchaseDate = o.PurchaseDate
	m.ExpectedDeliveryDate = o.ExpectedDeliveryDate
	m.ActualDeliveryDate = o.ActualDeliveryDate
	m.PaymentTerms = o.PaymentTerms
	m.Note = o.Note
	m.Subtotal = o.Subtotal
	m.Tax = o.Tax
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.Items = make([]PurchaseLineItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i] = *PurchaseLineItemModelFromDomain(&o.Items[i])
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder entity.
func PurchaseOrderModelFromDomain(o *procurement.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

// PurchaseLineItemModel is the persistence model for the PurchaseLineItem entity.
type PurchaseLineItemModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         *uuid.UUID      `gorm:"type:uuid;index"`
	Description       string          `gorm:"type:varchar(500);not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BatchNumber       string          `gorm:"type:varchar(100)"`
	ExpiryDate        *time.Time      ``
	WarehouseLocation string          `gorm:"type:varchar(100)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseLineItemModel) TableName() string {
	return "purchase_line_items"
}

// ToDomain converts the persistence model to a domain PurchaseLineItem entity.
func (m *PurchaseLineItemModel) ToDomain() *procurement.PurchaseLineItem {
	return &procurement.PurchaseLineItem{
		ID:                m.ID,
		OrderID:           m.OrderID,
		ProductID:         m.ProductID,
		Description:       m.Description,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		TotalPrice:        m.TotalPrice,
		ReceivedQuantity:  m.ReceivedQuantity,
		BatchNumber:       m.BatchNumber,
		ExpiryDate:        m.ExpiryDate,
		WarehouseLocation: m.WarehouseLocation,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain PurchaseLineItem entity.
func (m *PurchaseLineItemModel) FromDomain(i *procurement.PurchaseLineItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.Description = i.Description
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.TotalPrice = i.TotalPrice
	m.ReceivedQuantity = i.ReceivedQuantity
	m.BatchNumber = i.BatchNumber
	m.ExpiryDate = i.ExpiryDate
	m.WarehouseLocation = i.WarehouseLocation
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// PurchaseLineItemModelFromDomain creates a new persistence model from a domain PurchaseLineItem entity.
func PurchaseLineItemModelFromDomain(i *procurement.PurchaseLineItem) *PurchaseLineItemModel {
	m := &PurchaseLineItemModel{}
	m.FromDomain(i)
	return m
}

// ProductModel is a minimal view of the catalog product row; receiving only
// touches the stock column.
type ProductModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Stock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/finance"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VendorPayableModel is the persistence model for the VendorPayable aggregate root.
type VendorPayableModel struct {
	AggregateModel
	VendorID    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	VendorName  string                      `gorm:"type:varchar(200);not null"`
	OrderID     uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex"`
	OrderNumber string                      `gorm:"type:varchar(50);not null"`
	Amount      decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	DueDate     time.Time                   `gorm:"not null;index"`
	Status      finance.VendorPayableStatus `gorm:"type:varchar(20);not null;default:'OPEN';index"`
}

// TableName returns the table name for GORM
func (VendorPayableModel) TableName() string {
	return "vendor_payables"
}

// ToDomain converts the persistence model to a domain VendorPayable entity.
func (m *VendorPayableModel) ToDomain() *finance.VendorPayable {
	return &finance.VendorPayable{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		VendorID:    m.VendorID,
		VendorName:  m.VendorName,
		OrderID:     m.OrderID,
		OrderNumber: m.OrderNumber,
		Amount:      m.Amount,
		DueDate:     m.DueDate,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain VendorPayable entity.
func (m *VendorPayableModel) FromDomain(p *finance.VendorPayable) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.VendorID = p.VendorID
	m.VendorName = p.VendorName
	m.OrderID = p.OrderID
	m.OrderNumber = p.OrderNumber
	m.Amount = p.Amount
	m.DueDate = p.DueDate
	m.Status = p.Status
}

// VendorPayableModelFromDomain creates a new persistence model from a domain VendorPayable entity.
func VendorPayableModelFromDomain(p *finance.VendorPayable) *VendorPayableModel {
	m := &VendorPayableModel{}
	m.FromDomain(p)
	return m
}

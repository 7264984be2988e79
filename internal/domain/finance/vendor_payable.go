package finance

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VendorPayableStatus represents the settlement status of a payable
type VendorPayableStatus string

const (
	VendorPayableStatusOpen VendorPayableStatus = "OPEN"
	VendorPayableStatusPaid VendorPayableStatus = "PAID"
	VendorPayableStatusVoid VendorPayableStatus = "VOID"
)

// VendorPayable is a ledger entry owed to a vendor for delivered goods
type VendorPayable struct {
	shared.BaseAggregateRoot
	VendorID    uuid.UUID
	VendorName  string
	OrderID     uuid.UUID
	OrderNumber string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      VendorPayableStatus
}

// NewVendorPayable opens a payable for a fully received purchase order
func NewVendorPayable(vendorID uuid.UUID, vendorName string, orderID uuid.UUID, orderNumber string, amount decimal.Decimal, deliveryDate time.Time, paymentTerms string) (*VendorPayable, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Vendor ID cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidPrice, "Payable amount cannot be negative")
	}

	return &VendorPayable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		VendorName:        vendorName,
		OrderID:           orderID,
		OrderNumber:       orderNumber,
		Amount:            amount,
		DueDate:           DueDateFor(deliveryDate, paymentTerms),
		Status:            VendorPayableStatusOpen,
	}, nil
}

// MarkPaid settles the payable
func (p *VendorPayable) MarkPaid() error {
	if p.Status != VendorPayableStatusOpen {
		return shared.NewDomainError("INVALID_TRANSITION", "Only open payables can be paid")
	}
	p.Status = VendorPayableStatusPaid
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Void cancels the payable
func (p *VendorPayable) Void() error {
	if p.Status != VendorPayableStatusOpen {
		return shared.NewDomainError("INVALID_TRANSITION", "Only open payables can be voided")
	}
	p.Status = VendorPayableStatusVoid
	p.Touch()
	p.IncrementVersion()
	return nil
}

// DueDateFor derives when a payable falls due from the delivery date and
// the order's payment terms. EOM terms are due at the end of the delivery
// month; everything else adds TermsDays to the delivery date.
func DueDateFor(deliveryDate time.Time, terms string) time.Time {
	if strings.EqualFold(strings.TrimSpace(terms), "EOM") {
		year, month, _ := deliveryDate.Date()
		firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, deliveryDate.Location())
		return firstOfNext.AddDate(0, 0, -1)
	}
	return deliveryDate.AddDate(0, 0, TermsDays(terms))
}

// TermsDays maps payment terms to the number of days until the payable is
// due. NET terms accept any day count in the NET_30, NET 30 and NET30
// spellings; COD, PREPAID, DUE_ON_RECEIPT and unknown terms are due
// immediately.
func TermsDays(terms string) int {
	normalized := strings.ToUpper(strings.TrimSpace(terms))
	normalized = strings.ReplaceAll(normalized, "_", " ")
	if rest, ok := strings.CutPrefix(normalized, "NET"); ok {
		if days, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && days >= 0 {
			return days
		}
	}
	return 0
}

// VendorPayableRepository defines the persistence contract for vendor payables
type VendorPayableRepository interface {
	// FindByID finds a payable by ID
	FindByID(ctx context.Context, id uuid.UUID) (*VendorPayable, error)

	// FindByOrder finds the payable opened for an order, if any
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*VendorPayable, error)

	// FindAll finds payables with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]VendorPayable, error)

	// Save creates or updates a payable
	Save(ctx context.Context, payable *VendorPayable) error
}

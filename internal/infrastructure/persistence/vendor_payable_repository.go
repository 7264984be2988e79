package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/finance"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorPayableRepository implements VendorPayableRepository using GORM
type GormVendorPayableRepository struct {
	db *gorm.DB
}

// NewGormVendorPayableRepository creates a new GormVendorPayableRepository
func NewGormVendorPayableRepository(db *gorm.DB) *GormVendorPayableRepository {
	return &GormVendorPayableRepository{db: db}
}

// FindByID finds a vendor payable by its ID
func (r *GormVendorPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.VendorPayable, error) {
	var model models.VendorPayableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder finds the payable opened for a purchase order
func (r *GormVendorPayableRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*finance.VendorPayable, error) {
	var model models.VendorPayableModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds vendor payables with filtering and pagination
func (r *GormVendorPayableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.VendorPayable, error) {
	var payableModels []models.VendorPayableModel

	query := r.db.WithContext(ctx).Model(&models.VendorPayableModel{})

	for key, value := range filter.Filters {
		switch key {
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, VendorPayableSortFields, "due_date")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&payableModels).Error; err != nil {
		return nil, err
	}
	payables := make([]finance.VendorPayable, len(payableModels))
	for i, model := range payableModels {
		payables[i] = *model.ToDomain()
	}
	return payables, nil
}

// Save creates or updates a vendor payable
func (r *GormVendorPayableRepository) Save(ctx context.Context, payable *finance.VendorPayable) error {
	model := models.VendorPayableModelFromDomain(payable)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormVendorPayableRepository implements VendorPayableRepository
var _ finance.VendorPayableRepository = (*GormVendorPayableRepository)(nil)

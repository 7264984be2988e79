package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":                     true,
	"created_at":             true,
	"updated_at":             true,
	"order_number":           true,
	"vendor_id":              true,
	"vendor_name":            true,
	"purchase_date":          true,
	"expected_delivery_date": true,
	"actual_delivery_date":   true,
	"status":                 true,
	"subtotal":               true,
	"total_amount":           true,
}

// VendorPayableSortFields contains allowed sort fields for vendor payables
var VendorPayableSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"vendor_id":    true,
	"vendor_name":  true,
	"order_number": true,
	"amount":       true,
	"due_date":     true,
	"status":       true,
}

// Package services contains stateless domain services for the sales bounded
// context. They operate purely on domain types and have zero dependencies
// beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"time"

	"github.com/ghuser/salesapi/services/sales/domain"
	"github.com/ghuser/salesapi/services/sales/domain/models"
	"github.com/ghuser/salesapi/services/sales/domain/pricing"
)

const (
	minSaleNumberLength = 3
	maxSaleNumberLength = 20
	maxNameLength       = 100
)

// ValidateSale runs structural validation over the whole aggregate before it
// is persisted. Every violation is collected; nothing short-circuits. Returns
// nil when the sale is valid.
func ValidateSale(sale *models.Sale) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if n := len(sale.SaleNumber); n < minSaleNumberLength || n > maxSaleNumberLength {
		errs = append(errs, domain.FieldError{
			Field:   "sale_number",
			Message: fmt.Sprintf("must be between %d and %d characters", minSaleNumberLength, maxSaleNumberLength),
		})
	}

	if sale.SaleDate.UTC().After(time.Now().UTC()) {
		errs = append(errs, domain.FieldError{Field: "sale_date", Message: "must not be in the future"})
	}

	if sale.CustomerID == "" {
		errs = append(errs, domain.FieldError{Field: "customer_id", Message: "is required"})
	}
	errs = append(errs, validateName("customer_name", sale.CustomerName)...)

	if sale.BranchID == "" {
		errs = append(errs, domain.FieldError{Field: "branch_id", Message: "is required"})
	}
	errs = append(errs, validateName("branch_name", sale.BranchName)...)

	if len(sale.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "must contain at least one item"})
	}
	for idx := range sale.Items {
		errs = append(errs, ValidateSaleItem(idx, &sale.Items[idx])...)
	}

	return errs
}

// ValidateSaleItem validates a single line item. The index is used to build
// field paths like "items[2].quantity" so the caller can point at the exact
// offending entry.
func ValidateSaleItem(idx int, item *models.SaleItem) domain.ValidationErrors {
	var errs domain.ValidationErrors
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", idx, name) }

	if item.ProductID == "" {
		errs = append(errs, domain.FieldError{Field: field("product_id"), Message: "is required"})
	}
	errs = append(errs, validateName(field("product_name"), item.ProductName)...)

	if item.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: field("quantity"), Message: "must be greater than zero"})
	} else if item.Quantity > pricing.MaxQuantity {
		errs = append(errs, domain.FieldError{
			Field:   field("quantity"),
			Message: fmt.Sprintf("cannot sell more than %d units of a product", pricing.MaxQuantity),
		})
	}

	if !item.UnitPrice.IsPositive() {
		errs = append(errs, domain.FieldError{Field: field("unit_price"), Message: "must be greater than zero"})
	}

	return errs
}

func validateName(field, value string) domain.ValidationErrors {
	if value == "" {
		return domain.ValidationErrors{{Field: field, Message: "is required"}}
	}
	if len(value) > maxNameLength {
		return domain.ValidationErrors{{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxNameLength),
		}}
	}
	return nil
}

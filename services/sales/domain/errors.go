package domain

import "errors"

// Sentinel errors for the sales domain. Use errors.Is() to check these.
var (
	// ErrSaleNotFound indicates the requested sale does not exist.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrSaleNumberTaken indicates another sale already uses the same sale number.
	// Uniqueness of the sale number is a persistence concern, not a domain rule,
	// so only the repository returns this.
	ErrSaleNumberTaken = errors.New("sale number already taken")

	// ErrQuantityExceeded indicates a line item quantity is above the 20-unit cap.
	// This is a business rule, distinct from field validation: the pricing step
	// enforces it even when a caller bypasses the structural validator.
	ErrQuantityExceeded = errors.New("cannot sell more than 20 units of a product")
)

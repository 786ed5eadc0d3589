// Package pricing implements the quantity-tiered discount rules for sale items.
// It is pure computation: no I/O, no clock, no state.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/ghuser/salesapi/services/sales/domain"
)

// MaxQuantity is the hard cap on units of a single product per line item.
const MaxQuantity = 20

// Tier lower bounds. Bounds are inclusive: quantity 4 and quantity 10 already
// get the higher rate of their tier.
const (
	tierTenPercent    = 4
	tierTwentyPercent = 10
)

var (
	rateTenPercent    = decimal.NewFromFloat(0.10)
	rateTwentyPercent = decimal.NewFromFloat(0.20)
)

// Compute returns the discount and line total for one item.
//
//	quantity > 20  → domain.ErrQuantityExceeded
//	quantity >= 10 → 20% of unitPrice·quantity
//	quantity >= 4  → 10% of unitPrice·quantity
//	quantity < 4   → no discount
//
// total = unitPrice·quantity − discount in all non-failing cases.
func Compute(quantity int, unitPrice decimal.Decimal) (discount, total decimal.Decimal, err error) {
	if quantity > MaxQuantity {
		return decimal.Zero, decimal.Zero, domain.ErrQuantityExceeded
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	switch {
	case quantity >= tierTwentyPercent:
		discount = gross.Mul(rateTwentyPercent)
	case quantity >= tierTenPercent:
		discount = gross.Mul(rateTenPercent)
	default:
		discount = decimal.Zero
	}

	return discount, gross.Sub(discount), nil
}

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem is a line item owned exclusively by one Sale. Its identity is only
// meaningful within that sale; the back-reference to the owner is a plain
// SaleID, never an object pointer, so there is no ownership cycle.
//
// Discount and Total are derived by the pricing rules during Sale.Recalculate;
// callers never set them directly.
type SaleItem struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	IsCancelled bool
}

// NewSaleItem constructs a line item with a generated ID. Pricing fields stay
// zero until the owning sale recalculates.
func NewSaleItem(saleID uuid.UUID, productID, productName string, quantity int, unitPrice decimal.Decimal) SaleItem {
	return SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
}

// Cancel flags the item as cancelled. Price fields are untouched; the next
// update cycle that observes the flag emits the notification event.
func (i *SaleItem) Cancel() {
	i.IsCancelled = true
}

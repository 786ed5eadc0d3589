package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/salesapi/services/sales/domain/pricing"
)

// Sale is the aggregate root for a sales transaction. It owns an ordered
// collection of SaleItems and is mutated and persisted as one unit: callers
// never observe a sale whose total disagrees with its items.
type Sale struct {
	ID           uuid.UUID
	SaleNumber   string
	SaleDate     time.Time
	CustomerID   string
	CustomerName string // denormalized, not kept in sync with the customer system
	BranchID     string
	BranchName   string // denormalized
	Items        []SaleItem
	TotalAmount  decimal.Decimal
	IsCancelled  bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time // nil until the first mutation after construction
}

// NewSale constructs a sale aggregate with a generated ID and CreatedAt set to
// now. UpdatedAt stays nil: plain construction is not a mutation.
func NewSale(saleNumber string, saleDate time.Time, customerID, customerName, branchID, branchName string) *Sale {
	return &Sale{
		ID:           uuid.New(),
		SaleNumber:   saleNumber,
		SaleDate:     saleDate,
		CustomerID:   customerID,
		CustomerName: customerName,
		BranchID:     branchID,
		BranchName:   branchName,
		TotalAmount:  decimal.Zero,
		CreatedAt:    time.Now().UTC(),
	}
}

// AddItem appends a new line item owned by this sale. Pricing fields stay zero
// until Recalculate runs.
func (s *Sale) AddItem(productID, productName string, quantity int, unitPrice decimal.Decimal) {
	s.Items = append(s.Items, NewSaleItem(s.ID, productID, productName, quantity, unitPrice))
}

// Recalculate applies the pricing rules to every item and sets TotalAmount to
// the sum of item totals. It is atomic: all items are priced into a scratch
// slice first, so a failing item (quantity over the cap) leaves the aggregate
// exactly as it was. UpdatedAt advances on success.
func (s *Sale) Recalculate() error {
	type priced struct {
		discount decimal.Decimal
		total    decimal.Decimal
	}

	scratch := make([]priced, len(s.Items))
	sum := decimal.Zero
	for idx, item := range s.Items {
		discount, total, err := pricing.Compute(item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("item %q: %w", item.ProductName, err)
		}
		scratch[idx] = priced{discount: discount, total: total}
		sum = sum.Add(total)
	}

	for idx := range s.Items {
		s.Items[idx].Discount = scratch[idx].discount
		s.Items[idx].Total = scratch[idx].total
	}
	s.TotalAmount = sum
	s.touch()
	return nil
}

// Cancel marks the sale as cancelled. Cancellation is terminal: there is no
// way back to the active state. Calling Cancel on an already-cancelled sale
// leaves the state unchanged but still advances UpdatedAt.
func (s *Sale) Cancel() {
	s.IsCancelled = true
	s.touch()
}

// CancelledItems returns the items currently flagged as cancelled.
func (s *Sale) CancelledItems() []SaleItem {
	var out []SaleItem
	for _, item := range s.Items {
		if item.IsCancelled {
			out = append(out, item)
		}
	}
	return out
}

func (s *Sale) touch() {
	now := time.Now().UTC()
	s.UpdatedAt = &now
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/salesapi/services/sales/domain/models"
)

// SaleRepository is the persistence interface for the Sale aggregate.
// The domain layer owns this interface; infrastructure implements it.
// The aggregate is always read and written as one unit, items included.
type SaleRepository interface {
	// Create persists a new sale and all its items atomically.
	// Returns ErrSaleNumberTaken when the sale number is already in use.
	Create(ctx context.Context, sale *models.Sale) error

	// GetByID retrieves a sale with its items in insertion order.
	// Returns ErrSaleNotFound when no sale has the given ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)

	// Update persists the sale with full-replace semantics for the item
	// collection: every existing item row is discarded and the sale's current
	// items are written in their place, all inside one transaction.
	// Returns ErrSaleNotFound when the sale does not exist.
	Update(ctx context.Context, sale *models.Sale) error

	// Delete removes the sale and cascade-deletes its items. Reports false
	// when no sale had the given ID.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

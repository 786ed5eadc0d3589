package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/salesapi/pkg/cache"
	"github.com/ghuser/salesapi/pkg/logger"
	salesdomain "github.com/ghuser/salesapi/services/sales/domain"
	"github.com/ghuser/salesapi/services/sales/domain/events"
	"github.com/ghuser/salesapi/services/sales/domain/models"
	"github.com/ghuser/salesapi/services/sales/domain/repositories"
	domainsvcs "github.com/ghuser/salesapi/services/sales/domain/services"
)

// ItemInput is one line item in a create or update payload. Discount and
// total are never accepted from callers; the pricing rules derive them.
type ItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	IsCancelled bool
}

// CreateSaleInput is the full payload for creating a sale. No IDs: the
// aggregate generates its own.
type CreateSaleInput struct {
	SaleNumber   string
	SaleDate     time.Time
	CustomerID   string
	CustomerName string
	BranchID     string
	BranchName   string
	Items        []ItemInput
}

// UpdateSaleInput is the full replacement payload for an existing sale.
// The item list replaces the stored one entirely: an item omitted here is
// gone after the update, and every item gets a fresh identity.
type UpdateSaleInput struct {
	SaleNumber   string
	SaleDate     time.Time
	CustomerID   string
	CustomerName string
	BranchID     string
	BranchName   string
	IsCancelled  bool
	Items        []ItemInput
}

// SaleService orchestrates the sale use cases: validate input, drive the
// aggregate, persist, then publish events. Events go out only after
// persistence commits; a lost event is logged, never retried (at-most-once).
type SaleService struct {
	repo  repositories.SaleRepository
	pub   events.Publisher
	cache *pkgcache.SaleCache
	log   logger.Logger
}

// NewSaleService returns a SaleService wired with the given collaborators.
// cache may be nil; reads then always hit the repository.
func NewSaleService(repo repositories.SaleRepository, pub events.Publisher, saleCache *pkgcache.SaleCache, log logger.Logger) *SaleService {
	return &SaleService{repo: repo, pub: pub, cache: saleCache, log: log}
}

// Create validates the payload, builds the aggregate with fresh IDs, prices
// it, and persists it. Exactly one SaleCreatedEvent is published after the
// sale is durable; on any failure nothing is persisted and nothing is
// published.
func (s *SaleService) Create(ctx context.Context, in CreateSaleInput) (*models.Sale, error) {
	sale := models.NewSale(in.SaleNumber, in.SaleDate, in.CustomerID, in.CustomerName, in.BranchID, in.BranchName)
	for _, item := range in.Items {
		sale.AddItem(item.ProductID, item.ProductName, item.Quantity, item.UnitPrice)
	}

	if verrs := domainsvcs.ValidateSale(sale); len(verrs) > 0 {
		return nil, verrs
	}

	if err := sale.Recalculate(); err != nil {
		return nil, err
	}
	// Creation is not a mutation of an existing sale.
	sale.UpdatedAt = nil

	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	s.publish(ctx, events.NewSaleCreated(sale))

	return sale, nil
}

// Get retrieves a sale with its items using a read-through cache:
//  1. Check Redis first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
//
// No pricing is recomputed; the result reflects the last persisted totals.
func (s *SaleService) Get(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return cachedToSale(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "sale cache read failed, falling back to database",
				"sale_id", id, "error", err)
		}
	}

	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), saleToCached(sale))
		}()
	}

	return sale, nil
}

// Update replaces the stored sale with the payload. The whole item collection
// is discarded and rebuilt from the payload with fresh item IDs — there is no
// per-item diffing. Cancellation is monotonic: a sale that is already
// cancelled stays cancelled whatever the payload says.
//
// After a successful write, exactly one of SaleCancelledEvent or
// SaleModifiedEvent is published, followed by one ItemCancelledEvent per
// cancelled item in the post-update state, in that order.
func (s *SaleService) Update(ctx context.Context, id uuid.UUID, in UpdateSaleInput) (*models.Sale, error) {
	// Validate the replacement state before touching persistence. The
	// candidate carries the target ID so item back-references line up.
	candidate := &models.Sale{
		ID:           id,
		SaleNumber:   in.SaleNumber,
		SaleDate:     in.SaleDate,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		BranchID:     in.BranchID,
		BranchName:   in.BranchName,
	}
	for _, item := range in.Items {
		newItem := models.NewSaleItem(id, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice)
		newItem.IsCancelled = item.IsCancelled
		candidate.Items = append(candidate.Items, newItem)
	}
	if verrs := domainsvcs.ValidateSale(candidate); len(verrs) > 0 {
		return nil, verrs
	}

	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch sale for update: %w", err)
	}

	sale.SaleNumber = candidate.SaleNumber
	sale.SaleDate = candidate.SaleDate
	sale.CustomerID = candidate.CustomerID
	sale.CustomerName = candidate.CustomerName
	sale.BranchID = candidate.BranchID
	sale.BranchName = candidate.BranchName
	sale.Items = candidate.Items

	if in.IsCancelled {
		sale.Cancel()
	}

	if err := sale.Recalculate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("update sale: %w", err)
	}

	if sale.IsCancelled {
		s.publish(ctx, events.NewSaleCancelled(sale))
	} else {
		s.publish(ctx, events.NewSaleModified(sale))
	}
	for _, item := range sale.CancelledItems() {
		s.publish(ctx, events.NewItemCancelled(item))
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}

	return sale, nil
}

// Delete removes the sale and all its items. Absence is surfaced as
// ErrSaleNotFound so the caller decides whether that is an error or an
// idempotent success. No event is published for deletion.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if !deleted {
		return fmt.Errorf("sale %s: %w", id, salesdomain.ErrSaleNotFound)
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return nil
}

// publish emits one domain event, best-effort. The state change is already
// durable by the time this runs, so a publish failure is logged and swallowed
// rather than failing the use case.
func (s *SaleService) publish(ctx context.Context, event events.Event) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, event); err != nil {
		s.log.ErrorContext(ctx, "event publish failed",
			"topic", event.Topic(), "error", err)
	}
}

func cachedToSale(c *pkgcache.CachedSale) *models.Sale {
	sale := &models.Sale{
		ID:           c.ID,
		SaleNumber:   c.SaleNumber,
		SaleDate:     c.SaleDate,
		CustomerID:   c.CustomerID,
		CustomerName: c.CustomerName,
		BranchID:     c.BranchID,
		BranchName:   c.BranchName,
		TotalAmount:  c.TotalAmount,
		IsCancelled:  c.IsCancelled,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, item := range c.Items {
		sale.Items = append(sale.Items, models.SaleItem{
			ID:          item.ID,
			SaleID:      item.SaleID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Total:       item.Total,
			IsCancelled: item.IsCancelled,
		})
	}
	return sale
}

func saleToCached(sale *models.Sale) *pkgcache.CachedSale {
	cached := &pkgcache.CachedSale{
		ID:           sale.ID,
		SaleNumber:   sale.SaleNumber,
		SaleDate:     sale.SaleDate,
		CustomerID:   sale.CustomerID,
		CustomerName: sale.CustomerName,
		BranchID:     sale.BranchID,
		BranchName:   sale.BranchName,
		TotalAmount:  sale.TotalAmount,
		IsCancelled:  sale.IsCancelled,
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
	}
	for _, item := range sale.Items {
		cached.Items = append(cached.Items, pkgcache.CachedSaleItem{
			ID:          item.ID,
			SaleID:      item.SaleID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Total:       item.Total,
			IsCancelled: item.IsCancelled,
		})
	}
	return cached
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// SaleCacheTTL is the time-to-live for cached sales.
	SaleCacheTTL = time.Hour

	saleCacheKeyPrefix = "sale"
)

// CachedSale is the denormalized read model stored in Redis as a JSON blob.
// It mirrors the last persisted aggregate state; totals are never recomputed
// on the read path.
type CachedSale struct {
	ID           uuid.UUID        `json:"id"`
	SaleNumber   string           `json:"sale_number"`
	SaleDate     time.Time        `json:"sale_date"`
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	BranchID     string           `json:"branch_id"`
	BranchName   string           `json:"branch_name"`
	Items        []CachedSaleItem `json:"items"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	IsCancelled  bool             `json:"is_cancelled"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
}

// CachedSaleItem is one line item inside a CachedSale.
type CachedSaleItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	IsCancelled bool            `json:"is_cancelled"`
}

// SaleCache provides read/write operations for sale cache entries.
// Key format: "sale:{saleID}".
type SaleCache struct {
	client *RedisClient
}

// NewSaleCache creates a new SaleCache backed by the given RedisClient.
func NewSaleCache(r *RedisClient) *SaleCache {
	return &SaleCache{client: r}
}

// Get retrieves a cached sale by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *SaleCache) Get(ctx context.Context, saleID uuid.UUID) (*CachedSale, error) {
	raw, err := c.client.Client().Get(ctx, c.key(saleID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var sale CachedSale
	if err := json.Unmarshal(raw, &sale); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &sale, nil
}

// Set writes a cached sale as a JSON blob with a 1-hour TTL.
func (c *SaleCache) Set(ctx context.Context, sale *CachedSale) error {
	raw, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(sale.ID), raw, SaleCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete drops the cache entry for the given sale ID. Deleting a missing key
// is not an error.
func (c *SaleCache) Delete(ctx context.Context, saleID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(saleID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *SaleCache) key(saleID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", saleCacheKeyPrefix, saleID)
}

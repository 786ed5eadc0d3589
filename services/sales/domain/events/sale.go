package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/salesapi/services/sales/domain/models"
)

// Watermill topics for the sales bounded context.
const (
	TopicSaleCreated   = "sale.created"
	TopicSaleModified  = "sale.modified"
	TopicSaleCancelled = "sale.cancelled"
	TopicItemCancelled = "sale.item.cancelled"
)

// Event is the closed set of domain events this context emits. Each event
// knows its own topic, so publishers dispatch statically — no reflection.
// The four implementations below are the only ones.
type Event interface {
	Topic() string
}

// Publisher is the outbound port for emitting domain events. Delivery is
// best-effort and at-most-once: use cases call Publish only after persistence
// has committed, and a lost event is never retried by the core.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// SaleSnapshot is the sale state carried by sale-level events.
type SaleSnapshot struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	SaleNumber   string          `json:"sale_number"`
	SaleDate     time.Time       `json:"sale_date"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	BranchID     string          `json:"branch_id"`
	BranchName   string          `json:"branch_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	IsCancelled  bool            `json:"is_cancelled"`
	ItemCount    int             `json:"item_count"`
}

// ItemSnapshot is the line-item state carried by ItemCancelledEvent.
type ItemSnapshot struct {
	ItemID      uuid.UUID       `json:"item_id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// SaleCreatedEvent is published after a new sale is persisted.
type SaleCreatedEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	Version    int          `json:"version"`
	Sale       SaleSnapshot `json:"sale"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func (SaleCreatedEvent) Topic() string { return TopicSaleCreated }

// SaleModifiedEvent is published after an update whose resulting state is not
// cancelled. An update publishes exactly one of SaleModifiedEvent or
// SaleCancelledEvent, never both.
type SaleModifiedEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	Version    int          `json:"version"`
	Sale       SaleSnapshot `json:"sale"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func (SaleModifiedEvent) Topic() string { return TopicSaleModified }

// SaleCancelledEvent is published after an update whose resulting state is
// cancelled.
type SaleCancelledEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	Version    int          `json:"version"`
	Sale       SaleSnapshot `json:"sale"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func (SaleCancelledEvent) Topic() string { return TopicSaleCancelled }

// ItemCancelledEvent is published once per cancelled item in the post-update
// state, after the sale-level event.
type ItemCancelledEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	Version    int          `json:"version"`
	Item       ItemSnapshot `json:"item"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func (ItemCancelledEvent) Topic() string { return TopicItemCancelled }

// NewSaleCreated builds a SaleCreatedEvent from the persisted sale.
func NewSaleCreated(sale *models.Sale) SaleCreatedEvent {
	return SaleCreatedEvent{EventID: uuid.New(), Version: 1, Sale: snapshotSale(sale), OccurredAt: time.Now().UTC()}
}

// NewSaleModified builds a SaleModifiedEvent from the persisted sale.
func NewSaleModified(sale *models.Sale) SaleModifiedEvent {
	return SaleModifiedEvent{EventID: uuid.New(), Version: 1, Sale: snapshotSale(sale), OccurredAt: time.Now().UTC()}
}

// NewSaleCancelled builds a SaleCancelledEvent from the persisted sale.
func NewSaleCancelled(sale *models.Sale) SaleCancelledEvent {
	return SaleCancelledEvent{EventID: uuid.New(), Version: 1, Sale: snapshotSale(sale), OccurredAt: time.Now().UTC()}
}

// NewItemCancelled builds an ItemCancelledEvent from one cancelled item.
func NewItemCancelled(item models.SaleItem) ItemCancelledEvent {
	return ItemCancelledEvent{
		EventID: uuid.New(),
		Version: 1,
		Item: ItemSnapshot{
			ItemID:      item.ID,
			SaleID:      item.SaleID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Total:       item.Total,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func snapshotSale(sale *models.Sale) SaleSnapshot {
	return SaleSnapshot{
		SaleID:       sale.ID,
		SaleNumber:   sale.SaleNumber,
		SaleDate:     sale.SaleDate,
		CustomerID:   sale.CustomerID,
		CustomerName: sale.CustomerName,
		BranchID:     sale.BranchID,
		BranchName:   sale.BranchName,
		TotalAmount:  sale.TotalAmount,
		IsCancelled:  sale.IsCancelled,
		ItemCount:    len(sale.Items),
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/salesapi/pkg/config"
	"github.com/ghuser/salesapi/pkg/logger"
	salesdomain "github.com/ghuser/salesapi/services/sales/domain"
	"github.com/ghuser/salesapi/services/sales/domain/events"
	"github.com/ghuser/salesapi/services/sales/domain/models"
)

// fakeRepo is an in-memory SaleRepository.
type fakeRepo struct {
	mu       sync.Mutex
	sales    map[uuid.UUID]*models.Sale
	failNext error
	createdN int
	updatedN int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sales: make(map[uuid.UUID]*models.Sale)}
}

func (r *fakeRepo) clone(sale *models.Sale) *models.Sale {
	cp := *sale
	cp.Items = append([]models.SaleItem(nil), sale.Items...)
	if sale.UpdatedAt != nil {
		at := *sale.UpdatedAt
		cp.UpdatedAt = &at
	}
	return &cp
}

func (r *fakeRepo) Create(ctx context.Context, sale *models.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	for _, existing := range r.sales {
		if existing.SaleNumber == sale.SaleNumber {
			return salesdomain.ErrSaleNumberTaken
		}
	}
	r.sales[sale.ID] = r.clone(sale)
	r.createdN++
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale, ok := r.sales[id]
	if !ok {
		return nil, fmt.Errorf("sale %s: %w", id, salesdomain.ErrSaleNotFound)
	}
	return r.clone(sale), nil
}

func (r *fakeRepo) Update(ctx context.Context, sale *models.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	if _, ok := r.sales[sale.ID]; !ok {
		return fmt.Errorf("sale %s: %w", sale.ID, salesdomain.ErrSaleNotFound)
	}
	r.sales[sale.ID] = r.clone(sale)
	r.updatedN++
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[id]; !ok {
		return false, nil
	}
	delete(r.sales, id)
	return true, nil
}

// fakePublisher records published events in order.
type fakePublisher struct {
	mu       sync.Mutex
	events   []events.Event
	failNext error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failNext != nil {
		err := p.failNext
		p.failNext = nil
		return err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Topic()
	}
	return out
}

func newTestService() (*SaleService, *fakeRepo, *fakePublisher) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	log := logger.New(&config.Config{LogLevel: "error", Environment: config.EnvTesting})
	return NewSaleService(repo, pub, nil, log), repo, pub
}

func validCreateInput() CreateSaleInput {
	return CreateSaleInput{
		SaleNumber:   "SALE-001",
		SaleDate:     time.Now().UTC().Add(-time.Hour),
		CustomerID:   "cust-1",
		CustomerName: "Alice",
		BranchID:     "branch-1",
		BranchName:   "Downtown",
		Items: []ItemInput{
			{ProductID: "prod-1", ProductName: "Widget", Quantity: 5, UnitPrice: decimal.RequireFromString("100")},
			{ProductID: "prod-2", ProductName: "Gizmo", Quantity: 2, UnitPrice: decimal.RequireFromString("30")},
		},
	}
}

func updateInputFrom(in CreateSaleInput) UpdateSaleInput {
	items := make([]ItemInput, len(in.Items))
	copy(items, in.Items)
	return UpdateSaleInput{
		SaleNumber:   in.SaleNumber,
		SaleDate:     in.SaleDate,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		BranchID:     in.BranchID,
		BranchName:   in.BranchName,
		Items:        items,
	}
}

func TestCreate(t *testing.T) {
	t.Run("persists priced sale and publishes one SaleCreated", func(t *testing.T) {
		svc, repo, pub := newTestService()

		sale, err := svc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		// 5×100 with 10% off = 450, plus 2×30 undiscounted = 60.
		if !sale.TotalAmount.Equal(decimal.RequireFromString("510")) {
			t.Errorf("TotalAmount = %s, want 510", sale.TotalAmount)
		}
		if sale.UpdatedAt != nil {
			t.Error("creation must leave UpdatedAt nil")
		}
		if repo.createdN != 1 {
			t.Errorf("repo writes = %d, want 1", repo.createdN)
		}

		topics := pub.topics()
		if len(topics) != 1 || topics[0] != events.TopicSaleCreated {
			t.Errorf("published topics = %v, want exactly one sale.created", topics)
		}
	})

	t.Run("validation failure persists and publishes nothing", func(t *testing.T) {
		svc, repo, pub := newTestService()

		in := validCreateInput()
		in.SaleNumber = "X"
		in.Items[0].Quantity = 0

		_, err := svc.Create(context.Background(), in)
		var verrs salesdomain.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("error = %v, want ValidationErrors", err)
		}
		if len(verrs) < 2 {
			t.Errorf("expected aggregated violations, got %v", verrs)
		}
		if repo.createdN != 0 || len(pub.topics()) != 0 {
			t.Error("failed create must not write or publish")
		}
	})

	t.Run("quantity over cap fails before persistence", func(t *testing.T) {
		svc, repo, pub := newTestService()

		in := validCreateInput()
		in.Items[0].Quantity = 21

		_, err := svc.Create(context.Background(), in)
		if err == nil {
			t.Fatal("expected error")
		}
		if repo.createdN != 0 || len(pub.topics()) != 0 {
			t.Error("failed create must not write or publish")
		}
	})

	t.Run("persistence failure publishes nothing", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.failNext = errors.New("connection reset")

		_, err := svc.Create(context.Background(), validCreateInput())
		if err == nil {
			t.Fatal("expected error")
		}
		if len(pub.topics()) != 0 {
			t.Errorf("published %v after failed write", pub.topics())
		}
	})

	t.Run("publish failure does not fail the use case", func(t *testing.T) {
		svc, repo, pub := newTestService()
		pub.failNext = errors.New("bus down")

		sale, err := svc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, ok := repo.sales[sale.ID]; !ok {
			t.Error("sale must stay persisted when publish fails")
		}
	})
}

func TestGet(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("returns persisted sale", func(t *testing.T) {
		got, err := svc.Get(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.SaleNumber != created.SaleNumber || len(got.Items) != 2 {
			t.Errorf("got %+v", got)
		}
		if !got.TotalAmount.Equal(created.TotalAmount) {
			t.Errorf("TotalAmount = %s, want %s", got.TotalAmount, created.TotalAmount)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.Get(context.Background(), uuid.New())
		if !errors.Is(err, salesdomain.ErrSaleNotFound) {
			t.Fatalf("error = %v, want ErrSaleNotFound", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	create := func(t *testing.T, svc *SaleService) *models.Sale {
		t.Helper()
		sale, err := svc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return sale
	}

	t.Run("replaces the whole item collection", func(t *testing.T) {
		svc, repo, pub := newTestService()
		sale := create(t, svc)
		pub.events = nil

		in := updateInputFrom(validCreateInput())
		in.Items = []ItemInput{
			{ProductID: "prod-9", ProductName: "Doodad", Quantity: 10, UnitPrice: decimal.RequireFromString("100")},
		}

		updated, err := svc.Update(context.Background(), sale.ID, in)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if len(updated.Items) != 1 || updated.Items[0].ProductID != "prod-9" {
			t.Fatalf("items not replaced: %+v", updated.Items)
		}
		// Replacement discards identity: the new item must not reuse any old ID.
		for _, old := range sale.Items {
			if updated.Items[0].ID == old.ID {
				t.Error("replaced item reused an old item ID")
			}
		}
		// 10×100 with 20% off.
		if !updated.TotalAmount.Equal(decimal.RequireFromString("800")) {
			t.Errorf("TotalAmount = %s, want 800", updated.TotalAmount)
		}
		if updated.UpdatedAt == nil {
			t.Error("update must set UpdatedAt")
		}

		stored := repo.sales[sale.ID]
		if len(stored.Items) != 1 {
			t.Errorf("stored items = %d, want 1", len(stored.Items))
		}

		topics := pub.topics()
		if len(topics) != 1 || topics[0] != events.TopicSaleModified {
			t.Errorf("published topics = %v, want exactly one sale.modified", topics)
		}
	})

	t.Run("cancelling publishes SaleCancelled then ItemCancelled per item", func(t *testing.T) {
		svc, _, pub := newTestService()
		sale := create(t, svc)
		pub.events = nil

		in := updateInputFrom(validCreateInput())
		in.IsCancelled = true
		in.Items[0].IsCancelled = true
		in.Items[1].IsCancelled = true

		updated, err := svc.Update(context.Background(), sale.ID, in)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !updated.IsCancelled {
			t.Error("sale must be cancelled")
		}

		want := []string{events.TopicSaleCancelled, events.TopicItemCancelled, events.TopicItemCancelled}
		got := pub.topics()
		if len(got) != len(want) {
			t.Fatalf("published topics = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("topic[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("cancellation is monotonic", func(t *testing.T) {
		svc, _, _ := newTestService()
		sale := create(t, svc)

		in := updateInputFrom(validCreateInput())
		in.IsCancelled = true
		if _, err := svc.Update(context.Background(), sale.ID, in); err != nil {
			t.Fatalf("cancel update error = %v", err)
		}

		in.IsCancelled = false
		updated, err := svc.Update(context.Background(), sale.ID, in)
		if err != nil {
			t.Fatalf("second update error = %v", err)
		}
		if !updated.IsCancelled {
			t.Error("update un-cancelled a cancelled sale")
		}
	})

	t.Run("unknown id is not found before any write", func(t *testing.T) {
		svc, repo, pub := newTestService()

		_, err := svc.Update(context.Background(), uuid.New(), updateInputFrom(validCreateInput()))
		if !errors.Is(err, salesdomain.ErrSaleNotFound) {
			t.Fatalf("error = %v, want ErrSaleNotFound", err)
		}
		if repo.updatedN != 0 || len(pub.topics()) != 0 {
			t.Error("not-found update must not write or publish")
		}
	})

	t.Run("quantity over cap leaves stored sale and bus untouched", func(t *testing.T) {
		svc, repo, pub := newTestService()
		sale := create(t, svc)
		pub.events = nil

		in := updateInputFrom(validCreateInput())
		in.Items[0].Quantity = 21

		_, err := svc.Update(context.Background(), sale.ID, in)
		var verrs salesdomain.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("error = %v, want ValidationErrors", err)
		}

		stored := repo.sales[sale.ID]
		if len(stored.Items) != 2 || !stored.TotalAmount.Equal(sale.TotalAmount) {
			t.Error("failed update mutated stored sale")
		}
		if len(pub.topics()) != 0 {
			t.Errorf("published %v after failed update", pub.topics())
		}
	})

	t.Run("persistence failure publishes nothing", func(t *testing.T) {
		svc, repo, pub := newTestService()
		sale := create(t, svc)
		pub.events = nil
		repo.failNext = errors.New("connection reset")

		_, err := svc.Update(context.Background(), sale.ID, updateInputFrom(validCreateInput()))
		if err == nil {
			t.Fatal("expected error")
		}
		if len(pub.topics()) != 0 {
			t.Errorf("published %v after failed write", pub.topics())
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes the sale", func(t *testing.T) {
		svc, repo, _ := newTestService()
		sale, err := svc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if err := svc.Delete(context.Background(), sale.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok := repo.sales[sale.ID]; ok {
			t.Error("sale still present after delete")
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		svc, _, pub := newTestService()

		err := svc.Delete(context.Background(), uuid.New())
		if !errors.Is(err, salesdomain.ErrSaleNotFound) {
			t.Fatalf("error = %v, want ErrSaleNotFound", err)
		}
		if len(pub.topics()) != 0 {
			t.Errorf("delete published %v", pub.topics())
		}
	})

	t.Run("delete publishes no events", func(t *testing.T) {
		svc, _, pub := newTestService()
		sale, err := svc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		pub.events = nil

		if err := svc.Delete(context.Background(), sale.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if len(pub.topics()) != 0 {
			t.Errorf("delete published %v", pub.topics())
		}
	})
}

func TestCreateDuplicateSaleNumber(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(context.Background(), validCreateInput())
	if !errors.Is(err, salesdomain.ErrSaleNumberTaken) {
		t.Fatalf("error = %v, want ErrSaleNumberTaken", err)
	}
}

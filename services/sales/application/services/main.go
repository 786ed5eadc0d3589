package services

import (
	"github.com/ghuser/salesapi/pkg/app"
	"github.com/ghuser/salesapi/pkg/cache"
	"github.com/ghuser/salesapi/services/sales/infrastructure/messaging"
	"github.com/ghuser/salesapi/services/sales/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Sale *SaleService
}

// New wires all sales application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewSaleRepository(a.Db)
	pub := messaging.NewEventPublisher(a.EventBus)
	saleCache := cache.NewSaleCache(a.Redis)
	return &Services{
		Sale: NewSaleService(repo, pub, saleCache, a.Logger),
	}
}

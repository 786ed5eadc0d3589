package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ghuser/salesapi/pkg/app"
	"github.com/ghuser/salesapi/pkg/cache"
	"github.com/ghuser/salesapi/pkg/config"
	"github.com/ghuser/salesapi/pkg/database"
	"github.com/ghuser/salesapi/pkg/events"
	"github.com/ghuser/salesapi/pkg/logger"
	"github.com/ghuser/salesapi/pkg/telemetry"
	saleEvents "github.com/ghuser/salesapi/services/sales/domain/events"
)

var saleEventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sale_events_processed_total",
	Help: "Number of sale domain events consumed by the worker, by topic.",
}, []string{"topic"})

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// Expose /metrics for the worker process on its own listener.
	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)
	metricsSrv := &http.Server{Addr: cfg.WorkerMetricsAddr, Handler: mux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	_ = metricsSrv.Close()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all sale domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		saleEvents.TopicSaleCreated:   handleSaleEvent(a, saleEvents.TopicSaleCreated),
		saleEvents.TopicSaleModified:  handleSaleEvent(a, saleEvents.TopicSaleModified),
		saleEvents.TopicSaleCancelled: handleSaleEvent(a, saleEvents.TopicSaleCancelled),
		saleEvents.TopicItemCancelled: handleItemCancelled(a),
	}

	topics := make([]string, 0, len(handlers))
	for topic, handler := range handlers {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		topics = append(topics, topic)

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleSaleEvent consumes sale-level events. The snapshot in the payload may
// be stale relative to the read-model cache, so the handler invalidates the
// cached entry and lets the next GetByID repopulate it from Postgres.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
func handleSaleEvent(a *app.Application, topic string) func(context.Context, *message.Message) error {
	saleCache := cache.NewSaleCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		// All three sale-level events share the same envelope shape.
		var evt saleEvents.SaleModifiedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		saleEventsProcessed.WithLabelValues(topic).Inc()

		if err := saleCache.Delete(ctx, evt.Sale.SaleID); err != nil {
			// Invalidation is best-effort; the entry expires on its own TTL.
			a.Logger.WarnContext(ctx, "cache invalidation failed",
				"topic", topic, "sale_id", evt.Sale.SaleID, "error", err)
		}

		a.Logger.InfoContext(ctx, "sale event consumed",
			"topic", topic,
			"sale_id", evt.Sale.SaleID,
			"sale_number", evt.Sale.SaleNumber,
			"total_amount", evt.Sale.TotalAmount,
			"cancelled", evt.Sale.IsCancelled,
		)
		return nil
	}
}

func handleItemCancelled(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt saleEvents.ItemCancelledEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		saleEventsProcessed.WithLabelValues(saleEvents.TopicItemCancelled).Inc()

		a.Logger.InfoContext(ctx, "sale item cancelled",
			"sale_id", evt.Item.SaleID,
			"product_id", evt.Item.ProductID,
			"quantity", evt.Item.Quantity,
		)
		return nil
	}
}

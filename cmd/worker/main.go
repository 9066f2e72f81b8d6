package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/avalder/go-bookstore-api/internal/domains/catalog/application"
	catalogports "github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
	customersmemory "github.com/avalder/go-bookstore-api/internal/domains/customers/adapters/memory"
	customerspostgres "github.com/avalder/go-bookstore-api/internal/domains/customers/adapters/persistence/postgres"
	customersapp "github.com/avalder/go-bookstore-api/internal/domains/customers/application"
	customersports "github.com/avalder/go-bookstore-api/internal/domains/customers/ports"
	purchasesmemory "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/memory"
	purchasesobs "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/observability"
	purchasespostgres "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/persistence/postgres"
	purchasesapp "github.com/avalder/go-bookstore-api/internal/domains/purchases/application"
	purchasesports "github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	"github.com/avalder/go-bookstore-api/internal/platform/migrations"
	platformobservability "github.com/avalder/go-bookstore-api/internal/platform/observability"
	platformpostgres "github.com/avalder/go-bookstore-api/internal/platform/postgres"
	purchaseactivities "github.com/avalder/go-bookstore-api/internal/platform/temporal/activities/purchases"
	purchaseworkflows "github.com/avalder/go-bookstore-api/internal/platform/temporal/workflows/purchases"
)

func main() {
	ctx := context.Background()
	const serviceName = "bookstore-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	purchaseService, cleanupRepos := buildPurchaseService(ctx, instruments)
	defer cleanupRepos()
	activities := purchaseactivities.NewActivities(purchaseService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, purchaseworkflows.PurchaseCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(purchaseworkflows.PurchaseCreationWorkflow, workflow.RegisterOptions{Name: purchaseworkflows.PurchaseCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistPurchase, activity.RegisterOptions{Name: purchaseactivities.PersistPurchaseActivityName})

	logger.Info("worker listening", slog.String("taskQueue", purchaseworkflows.PurchaseCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildPurchaseService assembles the purchase orchestrator on top of either
// Postgres or in-memory repositories, matching the API process wiring so
// activities persist through the same path.
func buildPurchaseService(ctx context.Context, instruments *platformobservability.Instruments) (purchasesports.Service, func()) {
	logger := instruments.Logger
	db, cleanup := platformpostgres.Dial(ctx, os.Getenv("POSTGRES_DSN"), logger)
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var (
		bookRepo     catalogports.Repository
		customerRepo customersports.Repository
		purchaseRepo purchasesports.Repository
	)
	if db != nil {
		bookRepo = catalogpostgres.NewRepository(db)
		customerRepo = customerspostgres.NewRepository(db)
		purchaseRepo = purchasespostgres.NewRepository(db)
	} else {
		logger.Warn("POSTGRES_DSN not set, worker persisting to process-local memory stores; purchases recorded here are invisible to the API process")
		books := catalogmemory.NewRepository()
		bookRepo = books
		customerRepo = customersmemory.NewRepository()
		purchaseRepo = purchasesmemory.NewRepository(books)
	}

	bookService := catalogapp.NewService(bookRepo)
	customerService := customersapp.NewService(customerRepo)
	service := purchasesobs.New(
		purchasesapp.NewService(purchaseRepo, bookService, customerService),
		purchasesobs.WithLogger(logger),
		purchasesobs.WithTracer(instruments.Tracer("internal.purchases.application")),
		purchasesobs.WithMeter(instruments.Meter("internal.purchases.application")),
	)
	return service, cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	bookstoreserver "github.com/avalder/go-bookstore-api/server"

	catalogmemory "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/avalder/go-bookstore-api/internal/domains/catalog/application"
	catalogports "github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"

	customersmemory "github.com/avalder/go-bookstore-api/internal/domains/customers/adapters/memory"
	customersobs "github.com/avalder/go-bookstore-api/internal/domains/customers/adapters/observability"
	customerspostgres "github.com/avalder/go-bookstore-api/internal/domains/customers/adapters/persistence/postgres"
	customersapp "github.com/avalder/go-bookstore-api/internal/domains/customers/application"
	customersports "github.com/avalder/go-bookstore-api/internal/domains/customers/ports"

	purchasesmemory "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/memory"
	purchasesobs "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/observability"
	purchasespostgres "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/persistence/postgres"
	purchasesworkflows "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/workflows"
	purchasesapp "github.com/avalder/go-bookstore-api/internal/domains/purchases/application"
	purchasesports "github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"

	usersmemory "github.com/avalder/go-bookstore-api/internal/domains/users/adapters/memory"
	usersobs "github.com/avalder/go-bookstore-api/internal/domains/users/adapters/observability"
	userspostgres "github.com/avalder/go-bookstore-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/avalder/go-bookstore-api/internal/domains/users/adapters/token"
	usersapp "github.com/avalder/go-bookstore-api/internal/domains/users/application"
	usersports "github.com/avalder/go-bookstore-api/internal/domains/users/ports"

	"github.com/avalder/go-bookstore-api/internal/platform/migrations"
	platformobservability "github.com/avalder/go-bookstore-api/internal/platform/observability"
	platformpostgres "github.com/avalder/go-bookstore-api/internal/platform/postgres"
)

// Run boots the bookstore HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "bookstore-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.Dial(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	repos := buildRepositories(db)

	tokens, err := token.NewJWT(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure token signing: %w", err)
	}

	bookService := catalogobs.New(
		catalogapp.NewService(repos.books),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	customerService := customersobs.New(
		customersapp.NewService(repos.customers),
		customersobs.WithLogger(logger),
		customersobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customersobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	userService := usersobs.New(
		usersapp.NewService(repos.users, tokens),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	purchaseService := purchasesobs.New(
		purchasesapp.NewService(repos.purchases, bookService, customerService),
		purchasesobs.WithLogger(logger),
		purchasesobs.WithTracer(instruments.Tracer("internal.purchases.application")),
		purchasesobs.WithMeter(instruments.Meter("internal.purchases.application")),
	)

	var purchaseWorkflows purchasesports.WorkflowOrchestrator = purchasesworkflows.NewInlinePurchaseWorkflows(purchaseService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreatePurchase", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		purchaseWorkflows = purchasesworkflows.NewTemporalPurchaseWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := bookstoreserver.ApiHandleFunctions{
		BooksAPI:     bookstoreserver.NewBooksAPI(bookService),
		CustomersAPI: bookstoreserver.NewCustomersAPI(customerService),
		PurchasesAPI: bookstoreserver.NewPurchasesAPI(purchaseService, purchaseWorkflows),
		UsersAPI:     bookstoreserver.NewUsersAPI(userService),
		AuthAPI:      bookstoreserver.NewAuthAPI(userService),
	}

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	router = bookstoreserver.NewRouterWithGinEngine(router, handlers, tokens)

	addr := ":" + cfg.Port
	logger.Info("bookstore API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("bookstore API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	books     catalogports.Repository
	customers customersports.Repository
	users     usersports.Repository
	purchases purchasesports.Repository
}

// buildRepositories selects Postgres-backed adapters when a connection is
// available and falls back to the in-memory set otherwise. The in-memory
// purchase repository shares the catalog repository so stock decrements and
// purchase inserts stay coupled.
func buildRepositories(db *gorm.DB) repositories {
	if db != nil {
		return repositories{
			books:     catalogpostgres.NewRepository(db),
			customers: customerspostgres.NewRepository(db),
			users:     userspostgres.NewRepository(db),
			purchases: purchasespostgres.NewRepository(db),
		}
	}
	books := catalogmemory.NewRepository()
	return repositories{
		books:     books,
		customers: customersmemory.NewRepository(),
		users:     usersmemory.NewRepository(),
		purchases: purchasesmemory.NewRepository(books),
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}

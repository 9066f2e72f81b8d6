package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

const tracerName = "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/observability/service"

// Service decorates the purchase orchestrator with tracing, logging, and
// metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core purchase service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreatePurchase(ctx context.Context, input ports.CreatePurchaseInput) (*domain.Purchase, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseService.CreatePurchase",
		trace.WithAttributes(
			attribute.String("purchase.customer_id", input.CustomerID),
			attribute.String("purchase.book_id", input.BookID),
		))
	defer span.End()

	s.logInfo(ctx, "creating purchase",
		slog.String("customer.id", input.CustomerID), slog.String("book.id", input.BookID))
	result, err := s.inner.CreatePurchase(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, apperror.KindOf(err))
		return nil, s.handleError(ctx, span, err, "failed to create purchase",
			slog.String("customer.id", input.CustomerID), slog.String("book.id", input.BookID))
	}
	s.metrics.recordCreated(ctx)
	span.SetAttributes(attribute.String("purchase.id", result.ID), attribute.Float64("purchase.price", result.Book.Price))
	s.logInfo(ctx, "purchase created",
		slog.String("purchase.id", result.ID),
		slog.String("book.id", result.Book.ID),
		slog.Float64("purchase.price", result.Book.Price))
	return result, nil
}

func (s *Service) ListPurchases(ctx context.Context) ([]*domain.Purchase, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseService.ListPurchases")
	defer span.End()

	result, err := s.inner.ListPurchases(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list purchases")
	}
	span.SetAttributes(attribute.Int("purchases.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	purchasesCreated  metric.Int64Counter
	purchasesRejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("purchases.service.created",
		metric.WithDescription("Number of purchases created"))
	rejected, _ := m.Int64Counter("purchases.service.rejected",
		metric.WithDescription("Number of purchase attempts rejected, by error kind"))
	return serviceMetrics{purchasesCreated: created, purchasesRejected: rejected}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.purchasesCreated != nil {
		m.purchasesCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, kind apperror.Kind) {
	if m.purchasesRejected != nil {
		m.purchasesRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("error.kind", string(kind))))
	}
}

var _ ports.Service = (*Service)(nil)

package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/customers/ports"
)

const tracerName = "github.com/avalder/go-bookstore-api/internal/domains/customers/adapters/observability/service"

// Service decorates the customers service with tracing, logging, and metrics.
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

// New wraps the core customers service.
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

func (s *Service) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomersService.CreateCustomer")
	defer span.End()

	result, err := s.inner.CreateCustomer(ctx, customer)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create customer")
	}
	s.metrics.recordCreated(ctx, result.IsGold)
	s.logInfo(ctx, "customer created", slog.String("customer.id", result.ID), slog.Bool("customer.gold", result.IsGold))
	return result, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomersService.GetCustomer", trace.WithAttributes(attribute.String("customer.id", id)))
	defer span.End()

	result, err := s.inner.GetCustomer(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.String("customer.id", id))
	}
	return result, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomersService.ListCustomers")
	defer span.End()

	result, err := s.inner.ListCustomers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int("customers.count", len(result)))
	return result, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, update ports.CustomerUpdate) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomersService.UpdateCustomer", trace.WithAttributes(attribute.String("customer.id", id)))
	defer span.End()

	result, err := s.inner.UpdateCustomer(ctx, id, update)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update customer", slog.String("customer.id", id))
	}
	s.logInfo(ctx, "customer updated", slog.String("customer.id", id))
	return result, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomersService.DeleteCustomer", trace.WithAttributes(attribute.String("customer.id", id)))
	defer span.End()

	result, err := s.inner.DeleteCustomer(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to delete customer", slog.String("customer.id", id))
	}
	s.logInfo(ctx, "customer deleted", slog.String("customer.id", id))
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
	customersCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("customers.service.created", metric.WithDescription("Number of customers created"))
	return serviceMetrics{customersCreated: created}
}

func (m serviceMetrics) recordCreated(ctx context.Context, gold bool) {
	if m.customersCreated != nil {
		m.customersCreated.Add(ctx, 1, metric.WithAttributes(attribute.Bool("customer.gold", gold)))
	}
}

var _ ports.Service = (*Service)(nil)

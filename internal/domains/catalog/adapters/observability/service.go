package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
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

// New wraps the core catalog service.
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

func (s *Service) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateBook")
	defer span.End()

	result, err := s.inner.CreateBook(ctx, book)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create book")
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "book created", slog.String("book.id", result.ID), slog.String("book.title", result.Title))
	return result, nil
}

func (s *Service) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetBook", trace.WithAttributes(attribute.String("book.id", id)))
	defer span.End()

	result, err := s.inner.GetBook(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load book", slog.String("book.id", id))
	}
	return result, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListBooks")
	defer span.End()

	result, err := s.inner.ListBooks(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list books")
	}
	span.SetAttributes(attribute.Int("books.count", len(result)))
	return result, nil
}

func (s *Service) UpdateBook(ctx context.Context, id string, update ports.BookUpdate) (*domain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateBook", trace.WithAttributes(attribute.String("book.id", id)))
	defer span.End()

	result, err := s.inner.UpdateBook(ctx, id, update)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update book", slog.String("book.id", id))
	}
	s.logInfo(ctx, "book updated", slog.String("book.id", id))
	return result, nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) (*domain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteBook", trace.WithAttributes(attribute.String("book.id", id)))
	defer span.End()

	result, err := s.inner.DeleteBook(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to delete book", slog.String("book.id", id))
	}
	s.logInfo(ctx, "book deleted", slog.String("book.id", id))
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
	booksCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("catalog.service.books_created", metric.WithDescription("Number of books created"))
	return serviceMetrics{booksCreated: created}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.booksCreated != nil {
		m.booksCreated.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)

package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/avalder/go-bookstore-api/internal/domains/users/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/users/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

const tracerName = "github.com/avalder/go-bookstore-api/internal/domains/users/adapters/observability/service"

// Service decorates the users service with tracing, logging, and metrics.
// Credentials never reach the logs; only ids and outcome attributes do.
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

// New wraps the core users service.
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

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UsersService.Register")
	defer span.End()

	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user")
	}
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "user registered", slog.String("user.id", result.ID), slog.Bool("user.admin", result.IsAdmin))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UsersService.GetByID", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.String("user.id", id))
	}
	return result, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "UsersService.Authenticate")
	defer span.End()

	result, err := s.inner.Authenticate(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		// Failed logins are routine; record on the span without an error log.
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperror.KindOf(err)))
		return nil, err
	}
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "user authenticated", slog.String("user.id", result.User.ID))
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
	registered metric.Int64Counter
	logins     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of accounts created"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Login attempts by outcome"))
	return serviceMetrics{registered: registered, logins: logins}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registered != nil {
		m.registered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.ok", ok)))
	}
}

var _ ports.Service = (*Service)(nil)

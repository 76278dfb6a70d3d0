package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
)

const tracerName = "github.com/Apurer/brtx-marketplace/internal/domains/slugs/adapters/observability/service"

// Service decorates the slug directory with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core slug service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Slugs(ctx context.Context, walletID string) (*ports.WalletSlugsProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Slugs", trace.WithAttributes(attribute.String("wallet.id", walletID)))
	defer span.End()

	result, err := s.inner.Slugs(ctx, walletID)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load slugs", slog.String("wallet.id", walletID))
	}
	span.SetAttributes(attribute.Int("slug.count", len(result.Entity.Slugs)))
	return result, nil
}

func (s *Service) SetSlug(ctx context.Context, walletID, slug string) (*ports.WalletSlugsProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.SetSlug", trace.WithAttributes(
		attribute.String("wallet.id", walletID),
		attribute.String("slug", slug),
	))
	defer span.End()

	result, err := s.inner.SetSlug(ctx, walletID, slug)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to store slug", slog.String("wallet.id", walletID), slog.String("slug", slug))
	}
	addCounter(ctx, s.metrics.saved, 1)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "slug stored",
		slog.String("wallet.id", walletID),
		slog.String("slug", slug),
		slog.Int("slug.count", len(result.Entity.Slugs)),
	)
	return result, nil
}

func (s *Service) GetSlugs(ctx context.Context, walletID string) (*domain.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetSlugs", trace.WithAttributes(attribute.String("wallet.id", walletID)))
	defer span.End()

	result, err := s.inner.GetSlugs(ctx, walletID)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to resolve slugs", slog.String("wallet.id", walletID))
	}
	failed := 0
	for _, entry := range result.Collections {
		if entry.Failed() {
			failed++
			s.logger.LogAttrs(ctx, slog.LevelWarn, "collection lookup failed",
				slog.String("slug", entry.Slug),
				slog.String("error", entry.Err.Error()),
			)
		}
	}
	addCounter(ctx, s.metrics.lookupFailures, int64(failed))
	span.SetAttributes(
		attribute.Int("slug.count", len(result.Slugs)),
		attribute.Int("slug.failed", failed),
	)
	return result, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	saved          metric.Int64Counter
	lookupFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	saved, _ := m.Int64Counter("slugs.saved", metric.WithDescription("Number of slug store requests"))
	failures, _ := m.Int64Counter("slugs.lookup.failed", metric.WithDescription("Number of failed per-slug collection lookups"))
	return serviceMetrics{saved: saved, lookupFailures: failures}
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64) {
	if counter == nil || value == 0 {
		return
	}
	counter.Add(ctx, value)
}

var _ ports.Service = (*Service)(nil)

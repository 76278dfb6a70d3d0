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

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
)

const tracerName = "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/adapters/observability/service"

// Service decorates the marketplace port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

// ListProducts reads the full catalog.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := s.startSpan(ctx, "Service.ListProducts")
	defer span.End()

	s.logInfo(ctx, "listing products")
	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	s.metrics.recordListed(ctx, len(result))
	span.SetAttributes(attribute.Int("product.result.count", len(result)))
	s.logInfo(ctx, "listed products", slog.Int("count", len(result)))
	return result, nil
}

// GetProduct reads one catalog entry.
func (s *Service) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	ctx, span := s.startSpan(ctx, "Service.GetProduct", attribute.Int64("product.id", int64(id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Uint64("product.id", id))
	}
	return result, nil
}

// PlaceOrder buys a product and records the outcome.
func (s *Service) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOrder",
		attribute.Int64("product.id", int64(req.ProductID)),
		attribute.Bool("order.prepaid", req.Prepaid),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Uint64("product.id", req.ProductID), slog.Bool("prepaid", req.Prepaid))
	result, err := s.inner.PlaceOrder(ctx, req)
	if err != nil {
		s.metrics.recordFailed(ctx, req.Prepaid)
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Uint64("product.id", req.ProductID))
	}
	s.metrics.recordPlaced(ctx, req.Prepaid)
	span.SetAttributes(attribute.String("tx.hash", result.TransactionHash))
	s.logInfo(ctx, "order placed",
		slog.Uint64("product.id", result.ProductID),
		slog.String("tx.hash", result.TransactionHash),
		slog.String("amount", result.Amount.String()),
	)
	return result, nil
}

// TransferName moves an NFT name token.
func (s *Service) TransferName(ctx context.Context, req domain.NameTransferRequest) (*domain.Receipt, error) {
	ctx, span := s.startSpan(ctx, "Service.TransferName", attribute.String("transfer.to", req.To))
	defer span.End()

	s.logInfo(ctx, "transferring name", slog.String("to", req.To))
	result, err := s.inner.TransferName(ctx, req)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to transfer name", slog.String("to", req.To))
	}
	s.metrics.recordTransfer(ctx)
	span.SetAttributes(attribute.String("tx.hash", result.TransactionHash))
	s.logInfo(ctx, "name transferred", slog.String("tx.hash", result.TransactionHash))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	productsListed   metric.Int64Counter
	ordersPlaced     metric.Int64Counter
	ordersFailed     metric.Int64Counter
	namesTransferred metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	listed, _ := m.Int64Counter("marketplace.products.listed", metric.WithDescription("Number of catalog entries returned by listings"))
	placed, _ := m.Int64Counter("marketplace.orders.placed", metric.WithDescription("Number of confirmed purchases"))
	failed, _ := m.Int64Counter("marketplace.orders.failed", metric.WithDescription("Number of failed purchases"))
	transfers, _ := m.Int64Counter("marketplace.names.transferred", metric.WithDescription("Number of NFT name transfers"))
	return serviceMetrics{
		productsListed:   listed,
		ordersPlaced:     placed,
		ordersFailed:     failed,
		namesTransferred: transfers,
	}
}

func (m serviceMetrics) recordListed(ctx context.Context, count int) {
	addCounter(ctx, m.productsListed, int64(count))
}

func (m serviceMetrics) recordPlaced(ctx context.Context, prepaid bool) {
	addCounter(ctx, m.ordersPlaced, 1, attribute.Bool("order.prepaid", prepaid))
}

func (m serviceMetrics) recordFailed(ctx context.Context, prepaid bool) {
	addCounter(ctx, m.ordersFailed, 1, attribute.Bool("order.prepaid", prepaid))
}

func (m serviceMetrics) recordTransfer(ctx context.Context) {
	addCounter(ctx, m.namesTransferred, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)

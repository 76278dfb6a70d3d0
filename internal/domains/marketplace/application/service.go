package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
)

// maxPrealloc bounds the slice capacity reserved from an on-chain count.
const maxPrealloc = 1024

// Service reads the on-chain catalog and orchestrates purchases.
type Service struct {
	resolver ports.Resolver
	logger   *slog.Logger
}

// Option configures the marketplace service.
type Option func(*Service)

// WithLogger injects the logger used for skipped catalog records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the marketplace service with its contract resolver.
func NewService(resolver ports.Resolver, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListProducts enumerates store indices [0, ProductCount). Records that fail to decode are
// logged and skipped, so the result may be shorter than the reported count.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	bindings, err := s.resolver.ResolveReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	count, err := bindings.Marketplace.ProductCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("read product count: %w", err)
	}
	products := make([]*domain.Product, 0, min(count, maxPrealloc))
	for i := uint64(0); i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := bindings.Marketplace.Product(ctx, i)
		if err != nil && !errors.Is(err, ports.ErrMalformedRecord) {
			return nil, fmt.Errorf("read product %d: %w", i, err)
		}
		var product *domain.Product
		if err == nil {
			product, err = domain.DecodeProduct(i, record)
		}
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "skipping undecodable product",
				slog.Uint64("product.id", i),
				slog.String("error", err.Error()),
			)
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

// GetProduct reads a single catalog entry.
func (s *Service) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	bindings, err := s.resolver.ResolveReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	return loadProduct(ctx, bindings.Marketplace, id)
}

// PlaceOrder buys one unit of a product. Prepaid orders first raise the token allowance to the
// price when it is short. A confirmed approval is not undone if the purchase later fails.
func (s *Service) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	bindings, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	product, err := loadProduct(ctx, bindings.Marketplace, req.ProductID)
	if err != nil {
		return nil, err
	}
	price := product.Price

	if req.Prepaid {
		if err := s.ensureAllowance(ctx, bindings, price); err != nil {
			return nil, err
		}
	}

	pending, err := bindings.Marketplace.BuyProduct(ctx, req.ProductID, req.Prepaid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPurchaseFailed, err)
	}
	receipt, err := pending.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: awaiting %s: %w", ErrPurchaseFailed, pending.Hash(), err)
	}
	if !receipt.Succeeded {
		return nil, fmt.Errorf("%w: transaction %s reverted", ErrPurchaseFailed, receipt.TransactionHash)
	}
	return &domain.OrderResult{
		Success:         true,
		TransactionHash: receipt.TransactionHash,
		ProductID:       req.ProductID,
		Amount:          new(big.Int).Set(price),
	}, nil
}

// TransferName sends an NFT name token to another account and waits for it to be mined.
func (s *Service) TransferName(ctx context.Context, req domain.NameTransferRequest) (*domain.Receipt, error) {
	if err := req.Validate(); err != nil {
		return nil, mapError(err)
	}
	bindings, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := bindings.NFT.NameTransfer(ctx, req.To, req.TokenID)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidAddress) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	receipt, err := pending.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: awaiting %s: %w", ErrTransferFailed, pending.Hash(), err)
	}
	if !receipt.Succeeded {
		return nil, fmt.Errorf("%w: transaction %s reverted", ErrTransferFailed, receipt.TransactionHash)
	}
	return receipt, nil
}

func (s *Service) ensureAllowance(ctx context.Context, bindings *ports.Bindings, price *big.Int) error {
	spender := bindings.Marketplace.Address()
	allowance, err := bindings.Token.Allowance(ctx, bindings.Account, spender)
	if err != nil {
		return fmt.Errorf("%w: read allowance: %w", ErrApprovalFailed, err)
	}
	if !domain.NeedsApproval(allowance, price) {
		return nil
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "approving token allowance",
		slog.String("spender", spender),
		slog.String("amount", price.String()),
	)
	pending, err := bindings.Token.Approve(ctx, spender, new(big.Int).Set(price))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrApprovalFailed, err)
	}
	receipt, err := pending.Wait(ctx)
	if err != nil {
		return fmt.Errorf("%w: awaiting %s: %w", ErrApprovalFailed, pending.Hash(), err)
	}
	if !receipt.Succeeded {
		return fmt.Errorf("%w: transaction %s reverted", ErrApprovalFailed, receipt.TransactionHash)
	}
	return nil
}

func loadProduct(ctx context.Context, marketplace ports.Marketplace, id uint64) (*domain.Product, error) {
	record, err := marketplace.Product(ctx, id)
	if errors.Is(err, ports.ErrMalformedRecord) {
		return nil, fmt.Errorf("%w: product %d: %w", ports.ErrProductNotFound, id, err)
	}
	if err != nil {
		return nil, err
	}
	product, err := domain.DecodeProduct(id, record)
	if err != nil {
		return nil, fmt.Errorf("%w: product %d: %w", ports.ErrProductNotFound, id, err)
	}
	return product, nil
}

var _ ports.Service = (*Service)(nil)

package ports

import (
	"context"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
)

// Service defines the marketplace use cases exposed to adapters (inbound/driving port).
type Service interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id uint64) (*domain.Product, error)
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error)
	TransferName(ctx context.Context, req domain.NameTransferRequest) (*domain.Receipt, error)
}

// WorkflowOrchestrator runs order placement either durably or inline.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error)
}

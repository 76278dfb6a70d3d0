package ports

import (
	"context"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
)

// Service defines the slug directory use cases.
type Service interface {
	Slugs(ctx context.Context, walletID string) (*WalletSlugsProjection, error)
	SetSlug(ctx context.Context, walletID, slug string) (*WalletSlugsProjection, error)
	GetSlugs(ctx context.Context, walletID string) (*domain.Profile, error)
}

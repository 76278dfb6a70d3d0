package ports

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
	"github.com/Apurer/brtx-marketplace/internal/shared/projection"
)

var (
	// ErrNotFound is returned when the directory holds no record for a wallet.
	ErrNotFound = errors.New("wallet not found")
	// ErrRemoteUnavailable wraps failures reaching the directory store or listing service.
	ErrRemoteUnavailable = errors.New("remote unavailable")
)

// WalletSlugsProjection is a directory record plus persistence timestamps.
type WalletSlugsProjection = projection.Projection[*domain.WalletSlugs]

// Repository is the slug directory store.
type Repository interface {
	// AddSlug adds the slug to the wallet's set, creating the record when absent.
	AddSlug(ctx context.Context, walletID, slug string) (*WalletSlugsProjection, error)
	Get(ctx context.Context, walletID string) (*WalletSlugsProjection, error)
}

// ListingSource fetches the external collection listing for a slug.
type ListingSource interface {
	CollectionListings(ctx context.Context, slug string) (json.RawMessage, error)
}

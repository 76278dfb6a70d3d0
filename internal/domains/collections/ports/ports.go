package ports

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Apurer/brtx-marketplace/internal/domains/collections/domain"
)

// ErrRemoteUnavailable wraps failures of the listing service.
var ErrRemoteUnavailable = errors.New("remote unavailable")

// Source is the external collection listing service.
type Source interface {
	AccountNFTs(ctx context.Context, walletAddress string) ([]domain.NFT, error)
	CollectionListings(ctx context.Context, slug string) (json.RawMessage, error)
}

// Service exposes wallet holdings and collection listings.
type Service interface {
	WalletNFTs(ctx context.Context, walletAddress string) ([]*domain.NFT, error)
	CollectionListings(ctx context.Context, slug string) (json.RawMessage, error)
}

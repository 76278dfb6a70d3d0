package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/brtx-marketplace/internal/domains/collections/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/collections/ports"
)

// ErrInvalidInput signals a request without the identifiers it needs.
var ErrInvalidInput = errors.New("invalid collections input")

// Service proxies the listing service and prepares NFTs for display.
type Service struct {
	source        ports.Source
	defaultWallet string
}

// Option configures the collections service.
type Option func(*Service)

// WithDefaultWallet sets the wallet listed when a request names none.
func WithDefaultWallet(address string) Option {
	return func(s *Service) {
		s.defaultWallet = strings.TrimSpace(address)
	}
}

func NewService(source ports.Source, opts ...Option) *Service {
	s := &Service{source: source}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// WalletNFTs lists the wallet's NFTs with storefront defaults applied.
func (s *Service) WalletNFTs(ctx context.Context, walletAddress string) ([]*domain.NFT, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		walletAddress = s.defaultWallet
	}
	if walletAddress == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrMissingWallet)
	}
	nfts, err := s.source.AccountNFTs(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.NFT, 0, len(nfts))
	for i := range nfts {
		nft := nfts[i]
		nft.ApplyDefaults(i)
		out = append(out, &nft)
	}
	return out, nil
}

// CollectionListings returns the listing payload for a slug.
func (s *Service) CollectionListings(ctx context.Context, slug string) (json.RawMessage, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	return s.source.CollectionListings(ctx, slug)
}

var _ ports.Service = (*Service)(nil)

package opensea

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	openseaclient "github.com/Apurer/brtx-marketplace/internal/clients/http/opensea"
	"github.com/Apurer/brtx-marketplace/internal/domains/collections/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/collections/ports"
)

// Source adapts the listing service client to the collections port.
type Source struct {
	client *openseaclient.Client
}

func NewSource(client *openseaclient.Client) *Source {
	return &Source{client: client}
}

func (s *Source) AccountNFTs(ctx context.Context, walletAddress string) ([]domain.NFT, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("listing source not configured")
	}
	nfts, err := s.client.AccountNFTs(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
	}
	out := make([]domain.NFT, 0, len(nfts))
	for _, nft := range nfts {
		out = append(out, toDomain(nft))
	}
	return out, nil
}

func (s *Source) CollectionListings(ctx context.Context, slug string) (json.RawMessage, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("listing source not configured")
	}
	payload, err := s.client.CollectionListings(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
	}
	return payload, nil
}

func toDomain(nft openseaclient.NFT) domain.NFT {
	return domain.NFT{
		Identifier:  nft.Identifier,
		Collection:  nft.Collection,
		Contract:    nft.Contract,
		Name:        nft.Name,
		Description: nft.Description,
		ImageURL:    nft.ImageURL,
		Currency:    nft.Currency,
		Price:       parseWei(nft.Price),
	}
}

// parseWei accepts a base-10 integer; anything else counts as no price.
func parseWei(raw string) *big.Int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		return nil
	}
	return v
}

var _ ports.Source = (*Source)(nil)

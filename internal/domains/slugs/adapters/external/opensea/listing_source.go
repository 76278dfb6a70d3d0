package opensea

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openseaclient "github.com/Apurer/brtx-marketplace/internal/clients/http/opensea"
	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
)

// ListingSource resolves slugs through the listing service client.
type ListingSource struct {
	client *openseaclient.Client
}

// NewListingSource wires the HTTP client into the slug directory port.
func NewListingSource(client *openseaclient.Client) *ListingSource {
	return &ListingSource{client: client}
}

// CollectionListings fetches one collection's listings.
func (s *ListingSource) CollectionListings(ctx context.Context, slug string) (json.RawMessage, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("listing source not configured")
	}
	payload, err := s.client.CollectionListings(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
	}
	return payload, nil
}

var _ ports.ListingSource = (*ListingSource)(nil)

package application

import (
	"context"
	"strings"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
)

// Service stores wallet slugs and resolves them to collection listings.
type Service struct {
	repo     ports.Repository
	listings ports.ListingSource
}

// NewService wires the slug directory with its store and listing source.
func NewService(repo ports.Repository, listings ports.ListingSource) *Service {
	return &Service{repo: repo, listings: listings}
}

// Slugs returns the raw directory record.
func (s *Service) Slugs(ctx context.Context, walletID string) (*ports.WalletSlugsProjection, error) {
	walletID = strings.TrimSpace(walletID)
	if err := domain.ValidateWallet(walletID); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Get(ctx, walletID)
}

// SetSlug validates the slug and adds it to the wallet's set. Invalid slugs never reach the store.
func (s *Service) SetSlug(ctx context.Context, walletID, slug string) (*ports.WalletSlugsProjection, error) {
	walletID = strings.TrimSpace(walletID)
	if err := domain.ValidateWallet(walletID); err != nil {
		return nil, mapError(err)
	}
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, mapError(err)
	}
	return s.repo.AddSlug(ctx, walletID, slug)
}

// GetSlugs fetches the listing for every slug on file, one after another. A failed lookup is
// recorded on its entry and never aborts the others.
func (s *Service) GetSlugs(ctx context.Context, walletID string) (*domain.Profile, error) {
	record, err := s.Slugs(ctx, walletID)
	if err != nil {
		return nil, err
	}
	slugs := record.Entity.Slugs
	profile := &domain.Profile{
		Slugs:       append([]string(nil), slugs...),
		Collections: make([]domain.SlugCollection, 0, len(slugs)),
	}
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.listings.CollectionListings(ctx, slug)
		entry := domain.SlugCollection{Slug: slug, Data: data}
		if err != nil {
			entry = domain.SlugCollection{Slug: slug, Err: err}
		}
		profile.Collections = append(profile.Collections, entry)
	}
	return profile, nil
}

var _ ports.Service = (*Service)(nil)

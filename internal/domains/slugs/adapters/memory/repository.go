package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
	"github.com/Apurer/brtx-marketplace/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory slug directory.
type Repository struct {
	mu      sync.RWMutex
	wallets map[string]*ports.WalletSlugsProjection
	now     func() time.Time
}

func NewRepository() *Repository {
	return &Repository{wallets: map[string]*ports.WalletSlugsProjection{}, now: time.Now}
}

func (r *Repository) AddSlug(_ context.Context, walletID, slug string) (*ports.WalletSlugsProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	record, ok := r.wallets[walletID]
	if !ok {
		record = &ports.WalletSlugsProjection{
			Entity:   domain.NewWalletSlugs(walletID),
			Metadata: projection.Metadata{CreatedAt: now, UpdatedAt: now},
		}
		r.wallets[walletID] = record
	}
	if record.Entity.Add(slug) {
		record.Metadata.UpdatedAt = now
	}
	return clone(record), nil
}

func (r *Repository) Get(_ context.Context, walletID string) (*ports.WalletSlugsProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.wallets[walletID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(record), nil
}

func clone(record *ports.WalletSlugsProjection) *ports.WalletSlugsProjection {
	return &ports.WalletSlugsProjection{Entity: record.Entity.Clone(), Metadata: record.Metadata}
}

// Reset drops every wallet record.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets = map[string]*ports.WalletSlugsProjection{}
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
	"github.com/Apurer/brtx-marketplace/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists wallet slug sets in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed directory. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// walletSlugsRecord maps a wallet's slug set to a row.
type walletSlugsRecord struct {
	WalletID  string         `gorm:"primaryKey;column:wallet_id;size:128"`
	Slugs     pq.StringArray `gorm:"column:slugs;type:text[]"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;index"`
}

func (walletSlugsRecord) TableName() string { return "wallet_slugs" }

// AddSlug upserts the wallet row, appending the slug only when it is not already in the set.
func (r *Repository) AddSlug(ctx context.Context, walletID, slug string) (*ports.WalletSlugsProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := walletSlugsRecord{WalletID: walletID, Slugs: pq.StringArray{slug}}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "wallet_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"slugs": gorm.Expr(
					"CASE WHEN ?::text = ANY(wallet_slugs.slugs) THEN wallet_slugs.slugs ELSE array_append(wallet_slugs.slugs, ?::text) END",
					slug, slug,
				),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("%w: add slug: %w", ports.ErrRemoteUnavailable, err)
	}
	return r.Get(ctx, walletID)
}

// Get loads a wallet's slug set.
func (r *Repository) Get(ctx context.Context, walletID string) (*ports.WalletSlugsProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record walletSlugsRecord
	if err := r.db.WithContext(ctx).First(&record, "wallet_id = ?", walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("%w: load slugs: %w", ports.ErrRemoteUnavailable, err)
	}
	return record.toProjection(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres slug repository not configured")
	}
	return nil
}

func (r walletSlugsRecord) toProjection() *ports.WalletSlugsProjection {
	entity := domain.NewWalletSlugs(r.WalletID)
	for _, slug := range r.Slugs {
		entity.Add(slug)
	}
	return &ports.WalletSlugsProjection{
		Entity:   entity,
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}

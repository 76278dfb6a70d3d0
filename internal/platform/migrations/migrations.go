package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema owned by this service.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&walletSlugsRecord{})
}

// walletSlugsRecord mirrors the slugs Postgres adapter.
type walletSlugsRecord struct {
	WalletID  string         `gorm:"primaryKey;column:wallet_id;size:128"`
	Slugs     pq.StringArray `gorm:"column:slugs;type:text[]"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;index"`
}

func (walletSlugsRecord) TableName() string { return "wallet_slugs" }

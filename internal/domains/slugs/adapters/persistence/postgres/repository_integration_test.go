//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
	"github.com/Apurer/brtx-marketplace/internal/platform/migrations"
)

func setupSlugsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("marketplace_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_AddSlugUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSlugsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.AddSlug(ctx, "0xwallet", "foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, created.Entity.Slugs)
	assert.False(t, created.Metadata.CreatedAt.IsZero())

	_, err = repo.AddSlug(ctx, "0xwallet", "bar")
	require.NoError(t, err)
	again, err := repo.AddSlug(ctx, "0xwallet", "foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, again.Entity.Slugs)
}

func TestRepository_GetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSlugsPostgresContainer(t)
	defer cleanup()

	_, err := NewRepository(db).Get(context.Background(), "0xnobody")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

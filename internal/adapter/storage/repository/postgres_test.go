package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/MikeRez0/receiptprocessor/internal/adapter/config"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/storage"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/storage/repository"
	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getRepo connects to TEST_DATABASE_URI, the tests are skipped without it.
func getRepo(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	db, err := storage.NewDBStorage(context.Background(), &config.Database{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.RunMigrations())

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)
	return repo
}

func TestRepositoryDB_CreateReadReceipt(t *testing.T) {
	repo := getRepo(t)
	ctx := context.Background()

	id := uuid.NewString()
	receipt := &domain.Receipt{
		ID:           id,
		Retailer:     "Target",
		PurchaseDate: "2022-01-01",
		PurchaseTime: "13:01",
		Total:        "35.35",
		Points:       28,
		Items: []domain.Item{
			{ReceiptID: id, ShortDescription: "Mountain Dew 12PK", Price: "6.49"},
			{ReceiptID: id, ShortDescription: "Emils Cheese Pizza", Price: "12.25"},
			{ReceiptID: id, ShortDescription: "Knorr Creamy Chicken", Price: "1.26"},
		},
	}

	_, err := repo.CreateReceipt(ctx, receipt)
	require.NoError(t, err)

	got, err := repo.ReadReceipt(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, receipt, got)

	_, err = repo.CreateReceipt(ctx, receipt)
	assert.ErrorIs(t, err, domain.ErrConflictingData)
}

func TestRepositoryDB_ReceiptWithoutItems(t *testing.T) {
	repo := getRepo(t)
	ctx := context.Background()

	id := uuid.NewString()
	_, err := repo.CreateReceipt(ctx, &domain.Receipt{
		ID:           id,
		Retailer:     "Walmart",
		PurchaseDate: "2020-01-01",
		PurchaseTime: "10:00",
		Total:        "100.00",
		Points:       10,
	})
	require.NoError(t, err)

	got, err := repo.ReadReceipt(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, int64(10), got.Points)
}

func TestRepositoryDB_NotFound(t *testing.T) {
	repo := getRepo(t)

	_, err := repo.ReadReceipt(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

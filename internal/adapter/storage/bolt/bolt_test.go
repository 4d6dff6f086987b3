package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MikeRez0/receiptprocessor/internal/adapter/storage/bolt"
	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) *bolt.Repository {
	t.Helper()
	repo, err := bolt.NewRepository(filepath.Join(t.TempDir(), "receipts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testReceipt(id string) *domain.Receipt {
	return &domain.Receipt{
		ID:           id,
		Retailer:     "Walmart",
		PurchaseDate: "2020-01-01",
		PurchaseTime: "10:00",
		Total:        "15.00",
		Points:       94,
		Items: []domain.Item{
			{ReceiptID: id, ShortDescription: "Milk", Price: "10.00"},
			{ReceiptID: id, ShortDescription: "Bread1", Price: "5.00"},
		},
	}
}

func TestRepository_CreateAndRead(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	saved, err := repo.CreateReceipt(ctx, testReceipt("r1"))
	require.NoError(t, err)
	assert.Equal(t, "r1", saved.ID)

	_, err = repo.CreateReceipt(ctx, testReceipt("r2"))
	require.NoError(t, err)

	got, err := repo.ReadReceipt(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, testReceipt("r1"), got)
}

func TestRepository_Duplicate(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	_, err := repo.CreateReceipt(ctx, testReceipt("r1"))
	require.NoError(t, err)

	_, err = repo.CreateReceipt(ctx, testReceipt("r1"))
	assert.ErrorIs(t, err, domain.ErrConflictingData)
}

func TestRepository_NotFound(t *testing.T) {
	repo := newRepository(t)

	got, err := repo.ReadReceipt(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
	assert.Nil(t, got)
}

func TestRepository_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.db")
	ctx := context.Background()

	repo, err := bolt.NewRepository(path)
	require.NoError(t, err)
	_, err = repo.CreateReceipt(ctx, testReceipt("r1"))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = bolt.NewRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.ReadReceipt(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(94), got.Points)
	assert.Len(t, got.Items, 2)
}

func TestRepository_CanceledContext(t *testing.T) {
	repo := newRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.CreateReceipt(ctx, testReceipt("r1"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.ReadReceipt(context.Background(), "r1")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"go.etcd.io/bbolt"
)

var receiptsBucket = []byte("receipts")

// Repository keeps every receipt, items included, as one JSON value keyed
// by receipt id.
type Repository struct {
	db *bbolt.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(receiptsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) CreateReceipt(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(receipt)
	if err != nil {
		return nil, fmt.Errorf("marshaling receipt: %w", err)
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(receiptsBucket)
		if bucket.Get([]byte(receipt.ID)) != nil {
			return domain.ErrConflictingData
		}
		return bucket.Put([]byte(receipt.ID), data)
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

func (r *Repository) ReadReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var receipt domain.Receipt
	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(receiptsBucket).Get([]byte(id))
		if data == nil {
			return domain.ErrDataNotFound
		}
		if err := json.Unmarshal(data, &receipt); err != nil {
			return fmt.Errorf("unmarshaling receipt %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range receipt.Items {
		receipt.Items[i].ReceiptID = receipt.ID
	}

	return &receipt, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

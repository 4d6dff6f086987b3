package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/storage"
	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

// CreateReceipt inserts the receipt row and its item rows in one transaction.
func (rr *Repository) CreateReceipt(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	err := pgx.BeginFunc(ctx, rr.db, func(tx pgx.Tx) error {
		receiptSt := rr.db.QueryBuilder.
			Insert("receipts").
			Columns("id", "retailer", "purchase_date", "purchase_time", "total", "points").
			Values(receipt.ID, receipt.Retailer, receipt.PurchaseDate,
				receipt.PurchaseTime, receipt.Total, receipt.Points)

		sql, args, err := receiptSt.ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		if len(receipt.Items) == 0 {
			return nil
		}

		itemsSt := rr.db.QueryBuilder.
			Insert("items").
			Columns("receipt_id", "position", "short_description", "price")
		for i, item := range receipt.Items {
			itemsSt = itemsSt.Values(receipt.ID, i, item.ShortDescription, item.Price)
		}

		sql, args, err = itemsSt.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return receipt, nil
}

func (rr *Repository) ReadReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	statement := rr.db.QueryBuilder.
		Select("id", "retailer", "purchase_date", "purchase_time", "total", "points").
		From("receipts").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	receipt := domain.Receipt{}
	err = rr.db.QueryRow(ctx, sql, args...).Scan(
		&receipt.ID,
		&receipt.Retailer,
		&receipt.PurchaseDate,
		&receipt.PurchaseTime,
		&receipt.Total,
		&receipt.Points,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	items, err := rr.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	receipt.Items = items

	return &receipt, nil
}

func (rr *Repository) listItems(ctx context.Context, receiptID string) ([]domain.Item, error) {
	statement := rr.db.QueryBuilder.
		Select("receipt_id", "short_description", "price").
		From("items").
		Where(sq.Eq{"receipt_id": receiptID}).
		OrderBy("position")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := rr.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.Item, 0)
	for rows.Next() {
		item := domain.Item{}
		if err := rows.Scan(&item.ReceiptID, &item.ShortDescription, &item.Price); err != nil {
			return nil, err
		}
		list = append(list, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

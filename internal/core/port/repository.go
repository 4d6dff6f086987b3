package port

import (
	"context"

	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// CreateReceipt stores the receipt with its items as one unit.
	CreateReceipt(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error)
	// ReadReceipt returns domain.ErrDataNotFound for an unknown id.
	ReadReceipt(ctx context.Context, id string) (*domain.Receipt, error)
}

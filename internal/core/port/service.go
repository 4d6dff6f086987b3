package port

import (
	"context"

	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	ProcessReceipt(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error)
	GetPoints(ctx context.Context, id string) (int64, error)
	GetReceipt(ctx context.Context, id string) (*domain.Receipt, error)
}

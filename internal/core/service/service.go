package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"github.com/MikeRez0/receiptprocessor/internal/core/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo      port.Repository
	scorer    port.Scorer
	validator port.DateTimeValidator
	logger    *zap.Logger
}

func NewService(repo port.Repository, scorer port.Scorer,
	validator port.DateTimeValidator, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:      repo,
		scorer:    scorer,
		validator: validator,
		logger:    logger,
	}, nil
}

// ProcessReceipt scores, validates and stores the receipt. Nothing is stored
// unless both scoring and validation succeed.
func (s *Service) ProcessReceipt(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	points, err := s.scorer.Calculate(receipt)
	if err != nil {
		s.logger.Debug("Score receipt", zap.Error(err))
		return nil, err
	}

	valid, err := s.validator.Valid(receipt.PurchaseDate, receipt.PurchaseTime)
	if err != nil {
		s.logger.Debug("Validate receipt", zap.Error(err))
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("%w: purchased in the future at %s %s",
			domain.ErrInvalidReceipt, receipt.PurchaseDate, receipt.PurchaseTime)
	}

	toSave := *receipt
	toSave.Points = points
	if toSave.ID == "" {
		toSave.ID = uuid.NewString()
	}
	toSave.Items = make([]domain.Item, len(receipt.Items))
	for i, item := range receipt.Items {
		item.ReceiptID = toSave.ID
		toSave.Items[i] = item
	}

	saved, err := s.repo.CreateReceipt(ctx, &toSave)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, err
		}
		s.logger.Error("Create receipt", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}

	s.logger.Debug("Receipt saved",
		zap.String("id", saved.ID), zap.Int64("points", saved.Points))

	return saved, nil
}

func (s *Service) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	receipt, err := s.repo.ReadReceipt(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read receipt", zap.String("id", id), zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	return receipt, nil
}

func (s *Service) GetPoints(ctx context.Context, id string) (int64, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return 0, err
	}
	return receipt.Points, nil
}

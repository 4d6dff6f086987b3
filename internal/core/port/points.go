package port

import "github.com/MikeRez0/receiptprocessor/internal/core/domain"

type Scorer interface {
	Calculate(receipt *domain.Receipt) (int64, error)
}

type DateTimeValidator interface {
	Valid(purchaseDate, purchaseTime string) (bool, error)
}

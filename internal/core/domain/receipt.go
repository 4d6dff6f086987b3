package domain

import (
	"fmt"
	"time"

	"github.com/govalues/decimal"
)

// Receipt is a purchase record. Money fields keep the submitted two-digit
// decimal representation, Points is set once when the receipt is stored.
type Receipt struct {
	ID           string `json:"id"`
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate"`
	PurchaseTime string `json:"purchaseTime"`
	Total        string `json:"total"`
	Points       int64  `json:"points"`
	Items        []Item `json:"items"`
}

type Item struct {
	ReceiptID        string `json:"-"`
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Date returns the purchase date as midnight UTC.
func (r *Receipt) Date() (time.Time, error) {
	d, err := time.Parse(DateLayout, r.PurchaseDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: purchase date %q: %w", ErrMalformedInput, r.PurchaseDate, err)
	}
	return d, nil
}

// Clock returns the purchase time as hour and minute.
func (r *Receipt) Clock() (int, int, error) {
	t, err := time.Parse(TimeLayout, r.PurchaseTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: purchase time %q: %w", ErrMalformedInput, r.PurchaseTime, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseAmount parses a money string such as "12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q: %w", ErrMalformedInput, s, err)
	}
	if d.Sign() < 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q is negative", ErrMalformedInput, s)
	}
	return d, nil
}

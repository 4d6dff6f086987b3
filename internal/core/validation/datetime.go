package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Validator decides whether a purchase moment is not in the future.
// The answer depends on the clock, so two calls around midnight or around
// the purchase minute may disagree.
type Validator struct {
	now func() time.Time
}

type Option func(*Validator)

// WithClock replaces time.Now as the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Valid reports false for a purchase dated after today, or dated today with
// a time after the current minute. Unparsable input yields ErrMalformedInput.
func (v *Validator) Valid(purchaseDate, purchaseTime string) (bool, error) {
	if !datePattern.MatchString(purchaseDate) {
		return false, fmt.Errorf("%w: purchase date %q is not YYYY-MM-DD", domain.ErrMalformedInput, purchaseDate)
	}
	if !timePattern.MatchString(purchaseTime) {
		return false, fmt.Errorf("%w: purchase time %q is not HH:MM", domain.ErrMalformedInput, purchaseTime)
	}

	r := &domain.Receipt{PurchaseDate: purchaseDate, PurchaseTime: purchaseTime}
	date, err := r.Date()
	if err != nil {
		return false, err
	}
	hour, minute, err := r.Clock()
	if err != nil {
		return false, err
	}

	now := v.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	switch {
	case date.After(today):
		return false, nil
	case date.Equal(today):
		return hour*60+minute <= now.Hour()*60+now.Minute(), nil
	}

	return true, nil
}

package points

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"github.com/govalues/decimal"
)

// Rule is one independent contribution to a receipt score.
type Rule struct {
	Name   string
	Points func(r *domain.Receipt) (int64, error)
}

var (
	quarter     = decimal.MustParse("0.25")
	priceFactor = decimal.MustParse("0.2")
)

// DefaultRules returns the fixed rule set, in no meaningful order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "retailer", Points: RetailerPoints},
		{Name: "round_dollar", Points: RoundDollarPoints},
		{Name: "quarter_multiple", Points: QuarterMultiplePoints},
		{Name: "item_pairs", Points: ItemPairPoints},
		{Name: "description_length", Points: DescriptionLengthPoints},
		{Name: "odd_day", Points: OddDayPoints},
		{Name: "afternoon", Points: AfternoonPoints},
	}
}

// RetailerPoints is one point per ASCII letter or digit in the retailer name.
func RetailerPoints(r *domain.Receipt) (int64, error) {
	var n int64
	for i := 0; i < len(r.Retailer); i++ {
		c := r.Retailer[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			n++
		}
	}
	return n, nil
}

func RoundDollarPoints(r *domain.Receipt) (int64, error) {
	total, err := domain.ParseAmount(r.Total)
	if err != nil {
		return 0, err
	}
	if total.IsInt() {
		return 50, nil
	}
	return 0, nil
}

func QuarterMultiplePoints(r *domain.Receipt) (int64, error) {
	total, err := domain.ParseAmount(r.Total)
	if err != nil {
		return 0, err
	}
	_, rem, err := total.QuoRem(quarter)
	if err != nil {
		return 0, fmt.Errorf("%w: total %q: %w", domain.ErrMalformedInput, r.Total, err)
	}
	if rem.IsZero() {
		return 25, nil
	}
	return 0, nil
}

// ItemPairPoints is 5 points for every two items.
func ItemPairPoints(r *domain.Receipt) (int64, error) {
	return int64(len(r.Items) / 2 * 5), nil
}

// DescriptionLengthPoints adds ceil(price * 0.2) for every item whose trimmed
// description length is a multiple of 3.
func DescriptionLengthPoints(r *domain.Receipt) (int64, error) {
	var sum int64
	for _, item := range r.Items {
		if utf8.RuneCountInString(strings.TrimSpace(item.ShortDescription))%3 != 0 {
			continue
		}

		price, err := domain.ParseAmount(item.Price)
		if err != nil {
			return 0, err
		}
		scaled, err := price.Mul(priceFactor)
		if err != nil {
			return 0, fmt.Errorf("%w: price %q: %w", domain.ErrMalformedInput, item.Price, err)
		}
		whole, _, ok := scaled.Ceil(0).Int64(0)
		if !ok {
			return 0, fmt.Errorf("%w: price %q is out of range", domain.ErrMalformedInput, item.Price)
		}
		sum += whole
	}
	return sum, nil
}

func OddDayPoints(r *domain.Receipt) (int64, error) {
	date, err := r.Date()
	if err != nil {
		return 0, err
	}
	if date.Day()%2 == 1 {
		return 6, nil
	}
	return 0, nil
}

// AfternoonPoints is 10 points for a purchase after 14:00 and before 16:00,
// both ends excluded.
func AfternoonPoints(r *domain.Receipt) (int64, error) {
	hour, minute, err := r.Clock()
	if err != nil {
		return 0, err
	}
	if (hour > 14 || (hour == 14 && minute > 0)) && hour < 16 {
		return 10, nil
	}
	return 0, nil
}

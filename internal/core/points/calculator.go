package points

import (
	"fmt"

	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"go.uber.org/zap"
)

// Contribution is the share of a single rule in a receipt score.
type Contribution struct {
	Rule   string `json:"rule"`
	Points int64  `json:"points"`
}

type Calculator struct {
	rules  []Rule
	logger *zap.Logger
}

func NewCalculator(rules []Rule, logger *zap.Logger) *Calculator {
	return &Calculator{rules: rules, logger: logger}
}

// Explain evaluates every rule against the receipt. The first failing rule
// aborts the evaluation.
func (c *Calculator) Explain(r *domain.Receipt) ([]Contribution, error) {
	result := make([]Contribution, 0, len(c.rules))
	for _, rule := range c.rules {
		p, err := rule.Points(r)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		result = append(result, Contribution{Rule: rule.Name, Points: p})
	}
	return result, nil
}

// Calculate returns the receipt score. Scoring ignores temporal validity.
func (c *Calculator) Calculate(r *domain.Receipt) (int64, error) {
	contributions, err := c.Explain(r)
	if err != nil {
		return 0, err
	}

	var total int64
	fields := make([]zap.Field, 0, len(contributions)+1)
	for _, ct := range contributions {
		total += ct.Points
		fields = append(fields, zap.Int64(ct.Rule, ct.Points))
	}
	fields = append(fields, zap.Int64("total", total))
	c.logger.Debug("Receipt scored", fields...)

	return total, nil
}

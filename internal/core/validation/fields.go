package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var fieldRules = map[string]*regexp.Regexp{
	"shortdesc": regexp.MustCompile(`^[\w\s\-]+$`),
	"amount":    regexp.MustCompile(`^\d+\.\d{2}$`),
	"isodate":   regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	"clock":     regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`),
}

// RegisterReceiptRules adds the receipt field tags to v:
// shortdesc, amount, isodate, clock and notblank.
func RegisterReceiptRules(v *validator.Validate) error {
	for tag, re := range fieldRules {
		re := re
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register %s rule: %w", tag, err)
		}
	}

	err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		return fmt.Errorf("register notblank rule: %w", err)
	}

	return nil
}

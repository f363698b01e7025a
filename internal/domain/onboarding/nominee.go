package onboarding

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// NomineeTotal sums nominee percentages exactly
func NomineeTotal(nominees []Nominee) decimal.Decimal {
	total := decimal.Zero
	for _, n := range nominees {
		total = total.Add(n.Percentage)
	}
	return total
}

// ValidateNomineeShares checks each share is in (0, 100] and that a
// non-empty list sums to exactly 100. An empty list passes.
func ValidateNomineeShares(nominees []Nominee) ValidationErrors {
	if len(nominees) == 0 {
		return nil
	}

	var errs ValidationErrors
	for i, n := range nominees {
		path := fmt.Sprintf("%s[%d]", FieldNominees, i)
		if isBlank(n.Name) {
			errs = append(errs, FieldError{Field: FieldNominees, Path: path + ".name", Message: "Nominee name is required"})
		}
		if !n.Percentage.IsPositive() || n.Percentage.GreaterThan(hundred) {
			errs = append(errs, FieldError{Field: FieldNominees, Path: path + ".percentage", Message: "Percentage must be greater than 0 and at most 100"})
		}
	}

	if total := NomineeTotal(nominees); !total.Equal(hundred) {
		errs = append(errs, FieldError{
			Field:   FieldNominees,
			Path:    string(FieldNominees),
			Message: fmt.Sprintf("Nominee percentages must total 100 (currently %s)", total.String()),
		})
	}
	return errs
}

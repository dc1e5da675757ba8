package services

import (
	"strconv"
	"strings"
	"time"

	"sales_insights/internal/models"
	"sales_insights/internal/repositories/transactionstore"
	"sales_insights/pkg/utils"
)

// FilterParams selects records by free text and by month of sale. A zero
// Month means any month.
type FilterParams struct {
	Search string
	Month  time.Month
}

// BuildPredicate validates params and returns the matching predicate. All
// listing and aggregate paths go through here so they filter identically.
func BuildPredicate(params FilterParams) (transactionstore.Predicate, error) {
	if err := validateMonth(params.Month); err != nil {
		return nil, err
	}

	needle := strings.ToLower(params.Search)
	month := params.Month

	return func(t models.Transaction) bool {
		if month != 0 && t.DateOfSale.Month != month {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) ||
			strings.Contains(strings.ToLower(t.PriceText()), needle)
	}, nil
}

func validateMonth(m time.Month) error {
	if m != 0 && (m < time.January || m > time.December) {
		return utils.ValidationError("month must be between 1 and 12, got %d", int(m))
	}
	return nil
}

// ParseMonth reads a month query value. It accepts 1-12 or an English month
// name or three-letter abbreviation. An empty value means no month filter.
func ParseMonth(raw string) (time.Month, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	if n, err := strconv.Atoi(raw); err == nil {
		if n < 1 || n > 12 {
			return 0, utils.ValidationError("month must be between 1 and 12, got %d", n)
		}
		return time.Month(n), nil
	}

	lower := strings.ToLower(raw)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || lower == name[:3] {
			return m, nil
		}
	}
	return 0, utils.ValidationError("month %q is not a number between 1 and 12 or a month name", raw)
}

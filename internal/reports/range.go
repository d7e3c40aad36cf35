package reports

import (
	"fmt"
	"time"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

const dateLayout = "2006-01-02"

// DateRange is an optional bound pair over an entity's creation time.
// A nil bound means no constraint on that side; both nil matches
// everything (no predicate is emitted, as opposed to matching nothing).
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange builds a DateRange from optional request strings.
// Values are accepted as bare dates ("2006-01-02") or RFC3339 instants.
// A bare end date is widened to the last instant of that day in UTC so
// the whole day is included, matching the inclusive contract on both
// bounds. An end before the start is rejected.
func ParseDateRange(startDate, endDate string) (DateRange, error) {
	var r DateRange

	if startDate != "" {
		t, err := parseInstant(startDate)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: invalid startDate %q", shared.ErrValidation, startDate)
		}
		r.From = &t
	}

	if endDate != "" {
		t, bare, err := parseInstantBare(endDate)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: invalid endDate %q", shared.ErrValidation, endDate)
		}
		if bare {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r.To = &t
	}

	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return DateRange{}, fmt.Errorf("%w: endDate before startDate", shared.ErrValidation)
	}

	return r, nil
}

// Contains reports whether the instant satisfies the range predicate.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// IsZero reports whether the range carries no constraint.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

func parseInstant(s string) (time.Time, error) {
	t, _, err := parseInstantBare(s)
	return t, err
}

func parseInstantBare(s string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}

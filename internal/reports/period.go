// Package reports implements the sales aggregation pipeline: tenant and
// date-range filtering pushed down to the repository, then line-item
// explosion, period bucketing, grouping and sorting in memory.
package reports

import "time"

// Frequency selects the period granularity for report grouping.
type Frequency string

const (
	FreqDaily      Frequency = "daily"
	FreqWeekly     Frequency = "weekly"
	FreqMonthly    Frequency = "monthly"
	FreqQuarterly  Frequency = "quarter"
	FreqHalfYearly Frequency = "half_yearly"
	FreqYearly     Frequency = "yearly"
)

// ParseFrequency maps a request value to a Frequency. "3m" and "ytd"
// are accepted aliases; anything unknown or empty falls back to monthly.
func ParseFrequency(s string) Frequency {
	switch Frequency(s) {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqQuarterly, FreqHalfYearly, FreqYearly:
		return Frequency(s)
	}
	switch s {
	case "3m":
		return FreqQuarterly
	case "ytd":
		return FreqYearly
	}
	return FreqMonthly
}

// PeriodKey is the grouping key produced for one timestamp at one
// frequency. Only the fields relevant to the frequency are populated;
// the rest stay zero and are omitted from JSON. For weekly buckets Year
// holds the ISO week-year, which can differ from the calendar year at
// year boundaries.
type PeriodKey struct {
	Year    int `json:"year,omitempty"`
	Half    int `json:"half,omitempty"`
	Quarter int `json:"quarter,omitempty"`
	Month   int `json:"month,omitempty"`
	Week    int `json:"week,omitempty"`
	Day     int `json:"day,omitempty"`
}

// BucketKey maps a timestamp to its period key. Calendar fields are
// derived in UTC so day and week boundaries are stable regardless of
// server locale.
func BucketKey(t time.Time, freq Frequency) PeriodKey {
	t = t.UTC()
	switch freq {
	case FreqDaily:
		return PeriodKey{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	case FreqWeekly:
		year, week := t.ISOWeek()
		return PeriodKey{Year: year, Week: week}
	case FreqQuarterly:
		return PeriodKey{Year: t.Year(), Quarter: (int(t.Month())-1)/3 + 1}
	case FreqHalfYearly:
		half := 1
		if int(t.Month()) > 6 {
			half = 2
		}
		return PeriodKey{Year: t.Year(), Half: half}
	case FreqYearly:
		return PeriodKey{Year: t.Year()}
	default:
		return PeriodKey{Year: t.Year(), Month: int(t.Month())}
	}
}

// Less orders period keys ascending by whichever fields are populated.
// Comparing unpopulated fields is harmless since they are zero on both
// sides within a single report.
func (k PeriodKey) Less(other PeriodKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Half != other.Half {
		return k.Half < other.Half
	}
	if k.Quarter != other.Quarter {
		return k.Quarter < other.Quarter
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	if k.Week != other.Week {
		return k.Week < other.Week
	}
	return k.Day < other.Day
}

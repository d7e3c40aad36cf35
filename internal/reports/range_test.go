package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

func TestParseDateRangeBothAbsent(t *testing.T) {
	rng, err := ParseDateRange("", "")
	require.NoError(t, err)
	require.True(t, rng.IsZero())
	// no filter means match everything, not match nothing
	require.True(t, rng.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, rng.Contains(time.Date(2077, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRangeBounds(t *testing.T) {
	rng, err := ParseDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.False(t, rng.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	require.True(t, rng.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	// bare end date includes the whole day
	require.True(t, rng.Contains(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	require.False(t, rng.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRangeStartOnly(t *testing.T) {
	rng, err := ParseDateRange("2024-06-01", "")
	require.NoError(t, err)
	require.Nil(t, rng.To)
	require.True(t, rng.Contains(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, rng.Contains(time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRangeRFC3339(t *testing.T) {
	rng, err := ParseDateRange("2024-01-01T06:00:00Z", "2024-01-01T18:00:00Z")
	require.NoError(t, err)
	// exact instants are not widened
	require.True(t, rng.Contains(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)))
	require.False(t, rng.Contains(time.Date(2024, 1, 1, 18, 0, 1, 0, time.UTC)))
}

func TestParseDateRangeRejectsInvalid(t *testing.T) {
	_, err := ParseDateRange("yesterday", "")
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = ParseDateRange("", "soon")
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = ParseDateRange("2024-05-10", "2024-05-01")
	require.ErrorIs(t, err, shared.ErrValidation)
}

package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/service"
)

var testNow = time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)

func assertBusinessCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	busErr, ok := err.(*service.BusinessError)
	require.True(t, ok, "expected *service.BusinessError, got %T", err)
	assert.Equal(t, code, busErr.Code)
}

func TestNormalizeDueDate_Valid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{
			name:  "today",
			value: "2026-03-15",
			want:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "future day",
			value: "2026-12-31",
			want:  time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "full timestamp keeps only the calendar day",
			value: "2026-03-16T10:45:00Z",
			want:  time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "leap day",
			value: "2028-02-29",
			want:  time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.NormalizeDueDate(tt.value, false, testNow)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNormalizeDueDate_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"garbage", "invalid"},
		{"empty", ""},
		{"too short", "2026-3-5"},
		{"wrong separators", "2026/03/15"},
		{"non numeric day", "2026-03-xx"},
		{"month out of range", "2025-13-40"},
		{"day out of range", "2026-01-32"},
		{"zero month", "2026-00-10"},
		{"zero day", "2026-04-00"},
		{"impossible february day", "2025-02-30"},
		{"impossible april day", "2026-04-31"},
		{"non leap february 29", "2026-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.NormalizeDueDate(tt.value, false, testNow)
			assertBusinessCode(t, err, service.CodeInvalidDate)

			// Malformed input is rejected even when past dates are allowed.
			_, err = service.NormalizeDueDate(tt.value, true, testNow)
			assertBusinessCode(t, err, service.CodeInvalidDate)
		})
	}
}

func TestNormalizeDueDate_Past(t *testing.T) {
	_, err := service.NormalizeDueDate("2026-03-14", false, testNow)
	assertBusinessCode(t, err, service.CodePastDueDate)

	_, err = service.NormalizeDueDate("2020-01-01", false, testNow)
	assertBusinessCode(t, err, service.CodePastDueDate)

	got, err := service.NormalizeDueDate("2026-03-14", true, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeDueDate_Idempotent(t *testing.T) {
	first, err := service.NormalizeDueDate("2026-06-01", false, testNow)
	require.NoError(t, err)

	second, err := service.NormalizeDueDate(first.Format(time.RFC3339), false, testNow)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestStartOfDayUTC(t *testing.T) {
	assert.Equal(t,
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		service.StartOfDayUTC(testNow))

	// A local-zone instant truncates on its UTC day, not the local one.
	loc := time.FixedZone("UTC-5", -5*60*60)
	late := time.Date(2026, 3, 15, 22, 0, 0, 0, loc) // 2026-03-16 03:00 UTC
	assert.Equal(t,
		time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		service.StartOfDayUTC(late))
}

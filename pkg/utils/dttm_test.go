package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperationTime(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	tests := []struct {
		name  string
		in    string
		want  time.Time
		valid bool
	}{
		{"minutes", "2024-03-01T08:15", time.Date(2024, 3, 1, 8, 15, 0, 0, loc), true},
		{"millis zulu", "2024-03-01T08:15:30.250Z", time.Date(2024, 3, 1, 8, 15, 30, 250_000_000, loc), true},
		{"rfc3339", "2024-03-01T08:15:30+03:00", time.Date(2024, 3, 1, 8, 15, 30, 0, loc), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
		{"date only", "2024-03-01", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOperationTime(tt.in, loc)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestHoursBetween(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 2.5, HoursBetween(base, base.Add(150*time.Minute)))
	assert.Equal(t, 0.33, HoursBetween(base, base.Add(20*time.Minute)))
	assert.Equal(t, 0.0, HoursBetween(base, base))
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirthMoment(t *testing.T) {
	date := time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC)

	moment, err := BirthMoment(date, "14:30")
	require.NoError(t, err)
	assert.Equal(t, "1990-01-15T14:30:00+05:30", moment)
}

func TestBirthMomentAlwaysFixedOffset(t *testing.T) {
	// Смещение не зависит от локации даты
	date := time.Date(2000, 6, 1, 0, 0, 0, 0, time.FixedZone("UTC+9", 9*3600))

	moment, err := BirthMoment(date, "00:05")
	require.NoError(t, err)
	assert.Equal(t, "2000-06-01T00:05:00+05:30", moment)
}

func TestBirthMomentRoundTrip(t *testing.T) {
	date := time.Date(1985, 12, 31, 0, 0, 0, 0, time.UTC)

	moment, err := BirthMoment(date, "23:59")
	require.NoError(t, err)

	parsed, err := time.Parse("2006-01-02T15:04:05-07:00", moment)
	require.NoError(t, err)

	assert.Equal(t, 1985, parsed.Year())
	assert.Equal(t, time.December, parsed.Month())
	assert.Equal(t, 31, parsed.Day())
	assert.Equal(t, 23, parsed.Hour())
	assert.Equal(t, 59, parsed.Minute())
	assert.Equal(t, 0, parsed.Second())

	_, offset := parsed.Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}

func TestParseTimeOfBirthInvalid(t *testing.T) {
	tests := []struct {
		name        string
		timeOfBirth string
	}{
		{"empty", ""},
		{"no colon", "1430"},
		{"too many parts", "14:30:00"},
		{"hours out of range", "24:00"},
		{"minutes out of range", "12:60"},
		{"not a number", "ab:cd"},
		{"negative hours", "-1:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseTimeOfBirth(tt.timeOfBirth)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestParseTimeOfBirthValid(t *testing.T) {
	hour, minute, err := ParseTimeOfBirth("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 5, minute)
}

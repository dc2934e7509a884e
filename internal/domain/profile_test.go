package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() BirthProfile {
	return BirthProfile{
		FullName:     "Test Person",
		DateOfBirth:  time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeOfBirth:  "14:30",
		PlaceOfBirth: "Chennai, India",
		Gender:       GenderFemale,
	}
}

func TestBirthProfileValidate(t *testing.T) {
	profile := validProfile()
	require.NoError(t, profile.Validate())
}

func TestBirthProfileValidateMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BirthProfile)
		field  string
	}{
		{"empty name", func(p *BirthProfile) { p.FullName = "  " }, "full_name"},
		{"zero date", func(p *BirthProfile) { p.DateOfBirth = time.Time{} }, "date_of_birth"},
		{"bad time", func(p *BirthProfile) { p.TimeOfBirth = "25:00" }, "time_of_birth"},
		{"bad gender", func(p *BirthProfile) { p.Gender = "male" }, "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := validProfile()
			tt.mutate(&profile)

			err := profile.Validate()
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestGenderIsValid(t *testing.T) {
	assert.True(t, GenderMale.IsValid())
	assert.True(t, GenderFemale.IsValid())
	assert.True(t, GenderOther.IsValid())
	assert.False(t, Gender("").IsValid())
	assert.False(t, Gender("female").IsValid())
}

func TestVariantTagIsValid(t *testing.T) {
	assert.True(t, VariantRasi.IsValid())
	assert.True(t, VariantNavamsa.IsValid())
	assert.False(t, VariantTag("d10").IsValid())
}

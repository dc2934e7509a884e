package domain

import (
	"strings"
	"time"
)

// Gender пол субъекта, закрытое множество значений (как в legacy-схеме)
type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
	GenderOther  Gender = "o"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// DefaultPlaceOfBirth используется когда место рождения не указано.
// Место хранится как строка и не участвует в расчёте (см. координаты провайдера).
const DefaultPlaceOfBirth = "Chennai, India"

// BirthProfile данные рождения для расчёта натальной карты
type BirthProfile struct {
	FullName     string    `json:"full_name"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	TimeOfBirth  string    `json:"time_of_birth"` // "HH:MM"
	PlaceOfBirth string    `json:"place_of_birth"`
	Gender       Gender    `json:"gender"`
}

// Validate проверяет обязательные поля профиля рождения
func (p *BirthProfile) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return NewValidationError("full_name", "is required")
	}
	if p.DateOfBirth.IsZero() {
		return NewValidationError("date_of_birth", "is required")
	}
	if _, _, err := ParseTimeOfBirth(p.TimeOfBirth); err != nil {
		return err
	}
	if !p.Gender.IsValid() {
		return NewValidationError("gender", `must be either "m", "f", or "o"`)
	}
	return nil
}

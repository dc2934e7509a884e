package chartController

import (
	"time"

	"github.com/admin/astro-services/natal-api/internal/domain"
)

// CalculateRequest входные данные рождения для расчёта карты
type CalculateRequest struct {
	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dateOfBirth"` // "2006-01-02"
	TimeOfBirth  string `json:"timeOfBirth"` // "HH:MM"
	PlaceOfBirth string `json:"placeOfBirth"`
	Gender       string `json:"gender"` // "m", "f", "o"
}

// ToDomain конвертирует запрос в профиль рождения
func (r *CalculateRequest) ToDomain() (*domain.BirthProfile, error) {
	dateOfBirth, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return nil, domain.NewValidationError("date_of_birth", `must be in "YYYY-MM-DD" format`)
	}

	return &domain.BirthProfile{
		FullName:     r.FullName,
		DateOfBirth:  dateOfBirth,
		TimeOfBirth:  r.TimeOfBirth,
		PlaceOfBirth: r.PlaceOfBirth,
		Gender:       domain.Gender(r.Gender),
	}, nil
}

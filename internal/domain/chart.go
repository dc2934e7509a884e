package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// VariantTag вариант карты: основная (rasi) или дробная (navamsa)
type VariantTag string

const (
	VariantRasi    VariantTag = "rasi"
	VariantNavamsa VariantTag = "navamsa"
)

func (t VariantTag) IsValid() bool {
	return t == VariantRasi || t == VariantNavamsa
}

// AyanamsaLahiri код системы аянамсы Лахири - единственная используемая
const AyanamsaLahiri = 1

// PlanetPosition каноническая позиция планеты в карте
type PlanetPosition struct {
	Name         string  `json:"name"`
	Sign         string  `json:"sign"`
	House        int     `json:"house"`
	Degree       float64 `json:"degree"`
	Longitude    float64 `json:"longitude,omitempty"`
	Latitude     float64 `json:"latitude,omitempty"`
	Speed        float64 `json:"speed,omitempty"`
	IsRetrograde bool    `json:"is_retrograde"`
}

// Chart каноническое представление одного варианта карты.
// Порядок планет сохраняется как выдал провайдер и ничего не кодирует.
type Chart struct {
	AscendantSign  string           `json:"ascendant_sign"`
	AscendantHouse int              `json:"ascendant_house"` // по конвенции всегда 1
	Planets        []PlanetPosition `json:"planets"`
}

// RasiSummary базовые имена из rasi-ответа провайдера
type RasiSummary struct {
	Rasi      string `json:"rasi"`
	Nakshatra string `json:"nakshatra"`
	Ascendant string `json:"ascendant"`
}

// RawCapture непрозрачный слепок сырых ответов провайдера с меткой версии схемы.
// Хранится для аудита и диагностики, повторно никогда не парсится.
type RawCapture struct {
	SchemaVersion string          `json:"schema_version"`
	Rasi          json.RawMessage `json:"rasi,omitempty"`
	Navamsa       json.RawMessage `json:"navamsa,omitempty"`
}

// ChartRecord агрегат рассчитанной натальной карты.
// Создаётся ровно один раз на успешный расчёт и после этого не мутирует;
// "перегенерация" всегда создаёт новую запись.
type ChartRecord struct {
	ID           uuid.UUID  `json:"id"`
	OwnerID      uuid.UUID  `json:"owner_id"`
	FullName     string     `json:"full_name"`
	DateOfBirth  time.Time  `json:"date_of_birth"`
	TimeOfBirth  string     `json:"time_of_birth"`
	PlaceOfBirth string     `json:"place_of_birth"`
	Gender       Gender     `json:"gender"`
	Rasi         string     `json:"rasi"`
	Nakshatra    string     `json:"nakshatra"`
	Ascendant    string     `json:"ascendant"`
	RasiChart    Chart      `json:"rasi_chart"`
	NavamsaChart Chart      `json:"navamsa_chart"`
	RawPayload   RawCapture `json:"-"`
	RasiSVG      *string    `json:"rasi_chart_svg,omitempty"`
	NavamsaSVG   *string    `json:"navamsa_chart_svg,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ChartByVariant возвращает канонический вариант карты по тегу
func (r *ChartRecord) ChartByVariant(variant VariantTag) (Chart, bool) {
	switch variant {
	case VariantRasi:
		return r.RasiChart, true
	case VariantNavamsa:
		return r.NavamsaChart, true
	}
	return Chart{}, false
}

// BirthProfile восстанавливает профиль рождения из записи
func (r *ChartRecord) BirthProfile() BirthProfile {
	return BirthProfile{
		FullName:     r.FullName,
		DateOfBirth:  r.DateOfBirth,
		TimeOfBirth:  r.TimeOfBirth,
		PlaceOfBirth: r.PlaceOfBirth,
		Gender:       r.Gender,
	}
}

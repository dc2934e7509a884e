package chart

import (
	"strings"

	"github.com/admin/astro-services/natal-api/internal/domain"
)

// gridHouses фиксированная раскладка домов южно-индийского стиля, 0 - центральный блок
var gridHouses = [domain.GridSize][domain.GridSize]int{
	{12, 1, 2, 3},
	{11, 0, 0, 4},
	{10, 0, 0, 5},
	{9, 8, 7, 6},
}

var planetAbbr = map[string]string{
	"Sun":       "Su",
	"Moon":      "Mo",
	"Mars":      "Ma",
	"Mercury":   "Me",
	"Jupiter":   "Ju",
	"Venus":     "Ve",
	"Saturn":    "Sa",
	"Rahu":      "Ra",
	"Ketu":      "Ke",
	"Ascendant": "Asc",
	"Lagna":     "Asc",
}

func abbreviate(name string) string {
	if abbr, ok := planetAbbr[name]; ok {
		return abbr
	}
	return name
}

// houseSign знак дома = знак первой попавшей в него планеты.
// Это приближение из legacy-раскладки: пустые дома остаются без знака.
func houseSign(chart domain.Chart, house int) string {
	for _, planet := range chart.Planets {
		if planet.House == house {
			return planet.Sign
		}
	}
	return ""
}

func housePlanets(chart domain.Chart, house int) string {
	var abbrs []string
	for _, planet := range chart.Planets {
		if planet.House == house {
			abbrs = append(abbrs, abbreviate(planet.Name))
		}
	}
	return strings.Join(abbrs, ", ")
}

// BuildGrid раскладывает вариант карты записи на фиксированную сетку 4x4.
// Детерминирован: одна и та же запись всегда даёт байт-в-байт одинаковую сетку.
func BuildGrid(record *domain.ChartRecord, variant domain.VariantTag) (*domain.Grid, error) {
	chart, ok := record.ChartByVariant(variant)
	if !ok {
		return nil, domain.NewValidationError("variant", `must be either "rasi" or "navamsa"`)
	}

	grid := &domain.Grid{Variant: variant}
	for row := 0; row < domain.GridSize; row++ {
		for col := 0; col < domain.GridSize; col++ {
			house := gridHouses[row][col]
			if house == 0 {
				grid.Cells[row][col] = domain.GridCell{Center: true}
				continue
			}
			grid.Cells[row][col] = domain.GridCell{
				House:     house,
				Sign:      houseSign(chart, house),
				Planets:   housePlanets(chart, house),
				Ascendant: variant == domain.VariantRasi && house == 1,
			}
		}
	}

	if variant == domain.VariantRasi {
		grid.Summary = &domain.GridSummary{
			FullName:     record.FullName,
			DateOfBirth:  record.DateOfBirth.Format("2006-01-02"),
			TimeOfBirth:  record.TimeOfBirth,
			PlaceOfBirth: record.PlaceOfBirth,
			Rasi:         record.Rasi,
			Nakshatra:    record.Nakshatra,
		}
	}

	return grid, nil
}

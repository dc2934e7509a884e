package chart

import (
	"encoding/json"
	"strings"

	"github.com/admin/astro-services/natal-api/internal/domain"
)

const unknownValue = "Unknown"

// decodeRoot разбирает верхний уровень ответа провайдера.
// Полезная нагрузка может лежать как под "data", так и прямо в корне.
func decodeRoot(raw []byte) (map[string]json.RawMessage, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, &domain.NormalizationError{Message: "provider payload is not a JSON object"}
	}

	if data, ok := root["data"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			return inner, nil
		}
	}
	return root, nil
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func numberField(obj map[string]json.RawMessage, key string) (float64, bool) {
	raw, ok := obj[key]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func boolField(obj map[string]json.RawMessage, key string) (bool, bool) {
	raw, ok := obj[key]
	if !ok {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

// nestedName достаёт obj[key].name ("rasi": {"name": "Mesha"} и т.п.)
func nestedName(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var nested struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &nested); err != nil || nested.Name == "" {
		return "", false
	}
	return nested.Name, true
}

// planetSign знак планеты: плоское поле sign, вложенные rasi.name или zodiac.name
func planetSign(obj map[string]json.RawMessage) string {
	if s, ok := stringField(obj, "sign"); ok {
		return s
	}
	if s, ok := nestedName(obj, "rasi"); ok {
		return s
	}
	if s, ok := nestedName(obj, "zodiac"); ok {
		return s
	}
	if s, ok := stringField(obj, "zodiac"); ok {
		return s
	}
	return unknownValue
}

func planetHouse(obj map[string]json.RawMessage) int {
	if f, ok := numberField(obj, "house"); ok {
		return int(f)
	}
	if f, ok := numberField(obj, "position"); ok {
		return int(f)
	}
	return 0
}

func planetRetrograde(obj map[string]json.RawMessage) bool {
	for _, key := range []string{"is_retrograde", "isRetrograde", "retrograde"} {
		if b, ok := boolField(obj, key); ok {
			return b
		}
	}
	return false
}

// normalizeChart превращает сырой ответ провайдера в каноническую карту.
// Толерантен к вариациям имён полей; ошибкой считается только отсутствие
// списка планет (или когда он не список). Порядок планет сохраняется.
func normalizeChart(raw []byte, variant domain.VariantTag) (*domain.Chart, error) {
	root, err := decodeRoot(raw)
	if err != nil {
		return nil, err
	}

	planetsRaw, ok := root["planet_position"]
	if !ok {
		planetsRaw, ok = root["planets"]
	}
	if !ok {
		return nil, &domain.NormalizationError{
			Message: "planet list is missing in " + string(variant) + " payload",
		}
	}

	var planetObjs []map[string]json.RawMessage
	if err := json.Unmarshal(planetsRaw, &planetObjs); err != nil {
		return nil, &domain.NormalizationError{
			Message: "planet list is not a list in " + string(variant) + " payload",
		}
	}

	result := &domain.Chart{
		AscendantHouse: 1,
		AscendantSign:  unknownValue,
		Planets:        make([]domain.PlanetPosition, 0, len(planetObjs)),
	}

	for _, obj := range planetObjs {
		position := domain.PlanetPosition{
			Name:         unknownValue,
			Sign:         planetSign(obj),
			House:        planetHouse(obj),
			IsRetrograde: planetRetrograde(obj),
		}
		if name, ok := stringField(obj, "name"); ok {
			position.Name = name
		}
		if f, ok := numberField(obj, "degree"); ok {
			position.Degree = f
		}
		if f, ok := numberField(obj, "longitude"); ok {
			position.Longitude = f
		}
		if f, ok := numberField(obj, "latitude"); ok {
			position.Latitude = f
		}
		if f, ok := numberField(obj, "speed"); ok {
			position.Speed = f
		}

		if isAscendantName(position.Name) && result.AscendantSign == unknownValue {
			result.AscendantSign = position.Sign
		}

		result.Planets = append(result.Planets, position)
	}

	if sign, ok := nestedName(root, "ascendant"); ok {
		result.AscendantSign = sign
	} else if sign, ok := stringField(root, "ascendant"); ok {
		result.AscendantSign = sign
	}

	return result, nil
}

func isAscendantName(name string) bool {
	switch strings.ToLower(name) {
	case "ascendant", "asc", "lagna":
		return true
	}
	return false
}

// extractSummary достаёт базовые имена (rasi, nakshatra, ascendant) из
// rasi-ответа провайдера. Отсутствующие поля заменяются на "Unknown".
func extractSummary(raw []byte) domain.RasiSummary {
	summary := domain.RasiSummary{
		Rasi:      unknownValue,
		Nakshatra: unknownValue,
		Ascendant: unknownValue,
	}

	root, err := decodeRoot(raw)
	if err != nil {
		return summary
	}

	if name, ok := nestedName(root, "chandra_rasi"); ok {
		summary.Rasi = name
	} else if name, ok := nestedName(root, "rasi"); ok {
		summary.Rasi = name
	} else if name, ok := stringField(root, "rasi"); ok {
		summary.Rasi = name
	}

	if name, ok := nestedName(root, "nakshatra"); ok {
		summary.Nakshatra = name
	} else if name, ok := stringField(root, "nakshatra"); ok {
		summary.Nakshatra = name
	}

	if name, ok := nestedName(root, "ascendant"); ok {
		summary.Ascendant = name
	} else if name, ok := stringField(root, "ascendant"); ok {
		summary.Ascendant = name
	}

	return summary
}

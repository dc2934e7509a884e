package chart

import (
	"testing"

	"github.com/admin/astro-services/natal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeChartDataEnvelope(t *testing.T) {
	raw := []byte(`{
		"data": {
			"planet_position": [
				{"name": "Sun", "sign": "Capricorn", "house": 10, "degree": 1.5, "is_retrograde": false},
				{"name": "Moon", "rasi": {"name": "Taurus"}, "position": 2, "isRetrograde": false},
				{"name": "Saturn", "zodiac": {"name": "Sagittarius"}, "house": 9, "retrograde": true}
			]
		}
	}`)

	chart, err := normalizeChart(raw, domain.VariantRasi)
	require.NoError(t, err)
	require.Len(t, chart.Planets, 3)

	assert.Equal(t, "Sun", chart.Planets[0].Name)
	assert.Equal(t, "Capricorn", chart.Planets[0].Sign)
	assert.Equal(t, 10, chart.Planets[0].House)
	assert.InDelta(t, 1.5, chart.Planets[0].Degree, 0.0001)

	assert.Equal(t, "Taurus", chart.Planets[1].Sign)
	assert.Equal(t, 2, chart.Planets[1].House)

	assert.Equal(t, "Sagittarius", chart.Planets[2].Sign)
	assert.True(t, chart.Planets[2].IsRetrograde)
}

func TestNormalizeChartFlatPayload(t *testing.T) {
	raw := []byte(`{
		"planets": [
			{"name": "Mars", "sign": "Aries", "house": 1}
		]
	}`)

	chart, err := normalizeChart(raw, domain.VariantNavamsa)
	require.NoError(t, err)
	require.Len(t, chart.Planets, 1)
	assert.Equal(t, "Mars", chart.Planets[0].Name)
}

func TestNormalizeChartDefaults(t *testing.T) {
	raw := []byte(`{"planet_position": [{}]}`)

	chart, err := normalizeChart(raw, domain.VariantRasi)
	require.NoError(t, err)
	require.Len(t, chart.Planets, 1)

	planet := chart.Planets[0]
	assert.Equal(t, "Unknown", planet.Name)
	assert.Equal(t, "Unknown", planet.Sign)
	assert.Equal(t, 0, planet.House)
	assert.Zero(t, planet.Degree)
	assert.False(t, planet.IsRetrograde)
}

func TestNormalizeChartMissingPlanets(t *testing.T) {
	raw := []byte(`{"data": {"something_else": 1}}`)

	_, err := normalizeChart(raw, domain.VariantRasi)
	require.Error(t, err)
	assert.True(t, domain.IsNormalizationError(err))
}

func TestNormalizeChartPlanetsNotAList(t *testing.T) {
	raw := []byte(`{"planet_position": {"name": "Sun"}}`)

	_, err := normalizeChart(raw, domain.VariantNavamsa)
	require.Error(t, err)
	assert.True(t, domain.IsNormalizationError(err))
}

func TestNormalizeChartNotAnObject(t *testing.T) {
	_, err := normalizeChart([]byte(`[1, 2, 3]`), domain.VariantRasi)
	require.Error(t, err)
	assert.True(t, domain.IsNormalizationError(err))
}

func TestNormalizeChartPreservesOrder(t *testing.T) {
	raw := []byte(`{
		"planet_position": [
			{"name": "Ketu", "house": 3},
			{"name": "Sun", "house": 1},
			{"name": "Rahu", "house": 9}
		]
	}`)

	chart, err := normalizeChart(raw, domain.VariantRasi)
	require.NoError(t, err)

	names := make([]string, 0, len(chart.Planets))
	for _, p := range chart.Planets {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Ketu", "Sun", "Rahu"}, names)
}

func TestNormalizeChartAscendant(t *testing.T) {
	raw := []byte(`{
		"data": {
			"ascendant": {"name": "Leo"},
			"planet_position": [{"name": "Sun", "sign": "Aries", "house": 9}]
		}
	}`)

	chart, err := normalizeChart(raw, domain.VariantRasi)
	require.NoError(t, err)
	assert.Equal(t, "Leo", chart.AscendantSign)
	assert.Equal(t, 1, chart.AscendantHouse)
}

func TestNormalizeChartAscendantFromPlanetList(t *testing.T) {
	raw := []byte(`{
		"planet_position": [
			{"name": "Ascendant", "sign": "Virgo", "house": 1},
			{"name": "Sun", "sign": "Aries", "house": 8}
		]
	}`)

	chart, err := normalizeChart(raw, domain.VariantRasi)
	require.NoError(t, err)
	assert.Equal(t, "Virgo", chart.AscendantSign)
}

func TestExtractSummary(t *testing.T) {
	raw := []byte(`{
		"data": {
			"chandra_rasi": {"name": "Vrishabha"},
			"nakshatra": {"name": "Rohini"},
			"ascendant": {"name": "Simha"},
			"planet_position": []
		}
	}`)

	summary := extractSummary(raw)
	assert.Equal(t, "Vrishabha", summary.Rasi)
	assert.Equal(t, "Rohini", summary.Nakshatra)
	assert.Equal(t, "Simha", summary.Ascendant)
}

func TestExtractSummaryMissingFields(t *testing.T) {
	summary := extractSummary([]byte(`{"data": {"planet_position": []}}`))
	assert.Equal(t, "Unknown", summary.Rasi)
	assert.Equal(t, "Unknown", summary.Nakshatra)
	assert.Equal(t, "Unknown", summary.Ascendant)
}

func TestExtractSummaryFlatStrings(t *testing.T) {
	summary := extractSummary([]byte(`{"rasi": "Mesha", "nakshatra": "Ashwini", "ascendant": "Mesha"}`))
	assert.Equal(t, "Mesha", summary.Rasi)
	assert.Equal(t, "Ashwini", summary.Nakshatra)
	assert.Equal(t, "Mesha", summary.Ascendant)
}

func TestExtractSummaryUnparsable(t *testing.T) {
	summary := extractSummary([]byte(`not json`))
	assert.Equal(t, "Unknown", summary.Rasi)
	assert.Equal(t, "Unknown", summary.Nakshatra)
	assert.Equal(t, "Unknown", summary.Ascendant)
}

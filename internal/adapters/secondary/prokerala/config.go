package prokerala

import "github.com/admin/astro-services/natal-api/internal/domain"

// DefaultCoordinates фиксированная координата (Ченнаи), используется когда
// геокодированная координата недоступна - известное упрощение legacy-поведения
const DefaultCoordinates = "13.0827,80.2707"

type Config struct {
	BaseURL     string `envconfig:"BASE_URL" default:"https://api.prokerala.com/v2/astrology"`
	ApiKey      string `envconfig:"API_KEY"`
	Coordinates string `envconfig:"COORDINATES"`
	Timeout     int    `envconfig:"TIMEOUT" default:"30"` // в секундах
}

// Validate проверяет обязательность ключа API. Вызывается при старте процесса,
// до первого запроса (fail fast).
func (c *Config) Validate() error {
	if c.ApiKey == "" {
		return &domain.ConfigurationError{
			Message: "prokerala API key is not set (PROKERALA_API_KEY)",
		}
	}
	return nil
}

func (c *Config) coordinates() string {
	if c.Coordinates != "" {
		return c.Coordinates
	}
	return DefaultCoordinates
}

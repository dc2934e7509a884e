package domain

import (
	"errors"
	"fmt"
)

// ErrChartNotFound запись карты не найдена (или принадлежит другому пользователю)
var ErrChartNotFound = errors.New("chart record not found")

// ValidationError ошибка входных данных рождения, виновник - клиент.
// Запрос можно повторить с исправленными данными.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// ConfigurationError ошибка конфигурации процесса (например, нет ключа провайдера).
// Фатальна при старте, не проверяется на каждый запрос.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

func IsConfigurationError(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// ProviderError ошибка внешнего астро-провайдера: сеть, не-2xx статус или таймаут.
// Транзиентна - безопасно повторить весь пайплайн целиком.
type ProviderError struct {
	StatusCode int
	Message    string
	Timeout    bool
}

func (e *ProviderError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("astro provider timeout: %s", e.Message)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("astro provider error [status=%d]: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("astro provider error: %s", e.Message)
}

func IsProviderError(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}

// NormalizationError структурно непригодный ответ провайдера
// (список планет отсутствует или не является списком).
// Отсутствие отдельных полей ошибкой не считается - там работают дефолты.
type NormalizationError struct {
	Message string
}

func (e *NormalizationError) Error() string {
	return "normalization failed: " + e.Message
}

func IsNormalizationError(err error) bool {
	var normErr *NormalizationError
	return errors.As(err, &normErr)
}

package kafka

import "strings"

// Config конфигурация для Kafka producer
type Config struct {
	Brokers          string `envconfig:"BROKERS"`           // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC" default:"chart-events"`
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// IsEnabled события включаются указанием брокеров
func (c *Config) IsEnabled() bool {
	return c != nil && c.Brokers != ""
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	return strings.Split(c.Brokers, ",")
}

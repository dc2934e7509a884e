package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"log/slog"

	"github.com/IBM/sarama"
	"github.com/admin/astro-services/natal-api/internal/domain"
)

const eventChartCreated = "chart.created"

// Producer публикует события жизненного цикла записей карт
type Producer struct {
	producer sarama.SyncProducer
	cfg      *Config
	log      *slog.Logger
}

// NewProducer создаёт новый Kafka producer
func NewProducer(cfg *Config, log *slog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	if cfg.SecurityProtocol == "SASL_SSL" || cfg.SecurityProtocol == "SASL_PLAINTEXT" {
		config.Net.SASL.Enable = true
		config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		if cfg.SASLMechanism == "SCRAM-SHA-256" {
			config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
		}
		config.Net.SASL.User = cfg.SASLUsername
		config.Net.SASL.Password = cfg.SASLPassword
		if cfg.SecurityProtocol == "SASL_SSL" {
			config.Net.TLS.Enable = true
		}
	}

	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)

	return &Producer{
		producer: producer,
		cfg:      cfg,
		log:      log,
	}, nil
}

// SendChartCreated публикует событие о сохранённой записи карты
func (p *Producer) SendChartCreated(ctx context.Context, record *domain.ChartRecord) error {
	valueData := map[string]interface{}{
		"chart_id":   record.ID.String(),
		"owner_id":   record.OwnerID.String(),
		"rasi":       record.Rasi,
		"nakshatra":  record.Nakshatra,
		"ascendant":  record.Ascendant,
		"created_at": record.CreatedAt.Format(time.RFC3339),
	}
	valueBytes, err := json.Marshal(valueData)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event"),
			Value: []byte(eventChartCreated),
		},
		{
			Key:   []byte("owner_id"),
			Value: []byte(record.OwnerID.String()),
		},
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.cfg.Topic,
		Key:     sarama.StringEncoder(record.ID.String()),
		Value:   sarama.ByteEncoder(valueBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Debug("kafka send failed",
			"error", err,
			"topic", p.cfg.Topic,
			"key", record.ID.String(),
		)
		return fmt.Errorf("kafka send failed [topic=%s, key=%s]: %w",
			p.cfg.Topic, record.ID.String(), err)
	}

	p.log.Debug("chart created event sent to kafka",
		"topic", p.cfg.Topic,
		"partition", partition,
		"offset", offset,
		"key", record.ID.String(),
	)

	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	return p.producer.Close()
}

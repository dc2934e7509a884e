package kafka

import (
	"context"

	"github.com/admin/astro-services/natal-api/internal/domain"
)

// IChartEventProducer интерфейс для публикации событий жизненного цикла карт
type IChartEventProducer interface {
	// SendChartCreated публикует событие о сохранённой записи карты
	SendChartCreated(ctx context.Context, record *domain.ChartRecord) error
	// Close закрывает producer
	Close() error
}

package repository

import (
	"context"

	"github.com/admin/astro-services/natal-api/internal/domain"
	"github.com/google/uuid"
)

// IChartRepo интерфейс для работы с записями натальных карт.
// Записи insert-only: обновления нет, перегенерация создаёт новую запись.
type IChartRepo interface {
	Create(ctx context.Context, record *domain.ChartRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChartRecord, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ChartRecord, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

package service

import (
	"context"

	"github.com/admin/astro-services/natal-api/internal/domain"
	"github.com/google/uuid"
)

// IChartService интерфейс бизнес-логики расчёта и выдачи натальных карт.
// Вызывается только для уже аутентифицированного пользователя.
type IChartService interface {
	Calculate(ctx context.Context, ownerID uuid.UUID, profile *domain.BirthProfile) (*domain.ChartRecord, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.ChartRecord, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ChartRecord, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Layout(ctx context.Context, ownerID, id uuid.UUID, variant domain.VariantTag) (*domain.Grid, error)
}

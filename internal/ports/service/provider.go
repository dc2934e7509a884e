package service

import (
	"context"

	"github.com/admin/astro-services/natal-api/internal/domain"
)

// IAstroProvider интерфейс внешнего астрологического провайдера.
// Возвращает сырые payload'ы; нормализация - забота вызывающего пайплайна.
// Клиент не делает ретраев - политика повторов принадлежит вызывающему.
type IAstroProvider interface {
	// FetchPlanetPositions получает JSON позиций планет для варианта карты
	FetchPlanetPositions(ctx context.Context, instant string, variant domain.VariantTag, ayanamsa int) ([]byte, error)
	// FetchChartMarkup получает SVG-разметку карты для варианта
	FetchChartMarkup(ctx context.Context, instant string, variant domain.VariantTag, ayanamsa int) ([]byte, error)
}

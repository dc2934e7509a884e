package chart

import (
	"log/slog"

	"github.com/admin/astro-services/natal-api/internal/ports/cache"
	"github.com/admin/astro-services/natal-api/internal/ports/kafka"
	"github.com/admin/astro-services/natal-api/internal/ports/repository"
	"github.com/admin/astro-services/natal-api/internal/ports/service"
	"github.com/admin/astro-services/natal-api/internal/ports/storage"
)

// Service сервис расчёта и выдачи натальных карт.
// Events и Archive опциональны: при nil события и архив SVG просто не пишутся.
type Service struct {
	ChartRepo repository.IChartRepo
	Provider  service.IAstroProvider
	Cache     cache.Cache
	Events    kafka.IChartEventProducer
	Archive   storage.IS3Client
	Log       *slog.Logger
}

func New(
	chartRepo repository.IChartRepo,
	provider service.IAstroProvider,
	cache cache.Cache,
	events kafka.IChartEventProducer,
	archive storage.IS3Client,
	log *slog.Logger,
) *Service {
	return &Service{
		ChartRepo: chartRepo,
		Provider:  provider,
		Cache:     cache,
		Events:    events,
		Archive:   archive,
		Log:       log,
	}
}

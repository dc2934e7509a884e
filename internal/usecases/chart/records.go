package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/admin/astro-services/natal-api/internal/domain"
	"github.com/google/uuid"
)

const layoutCacheTTL = 24 * time.Hour

func layoutCacheKey(id uuid.UUID, variant domain.VariantTag) string {
	return fmt.Sprintf("chart:layout:%s:%s", id, variant)
}

// Get возвращает запись карты пользователя.
// Чужая запись неотличима от несуществующей.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.ChartRecord, error) {
	record, err := s.ChartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != ownerID {
		return nil, domain.ErrChartNotFound
	}
	return record, nil
}

// ListByOwner возвращает все записи карт пользователя, новые первыми
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ChartRecord, error) {
	return s.ChartRepo.GetByOwner(ctx, ownerID)
}

// Delete удаляет запись карты пользователя и инвалидирует кэш раскладок
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.ChartRepo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	for _, variant := range []domain.VariantTag{domain.VariantRasi, domain.VariantNavamsa} {
		if err := s.Cache.Delete(ctx, layoutCacheKey(id, variant)); err != nil {
			s.Log.Warn("failed to invalidate layout cache",
				"error", err,
				"chart_id", id,
				"variant", variant,
			)
		}
	}
	return nil
}

// Layout возвращает раскладку варианта карты на сетку южно-индийского стиля.
// Раскладка детерминирована, поэтому безопасно кэшируется по id+variant.
func (s *Service) Layout(ctx context.Context, ownerID, id uuid.UUID, variant domain.VariantTag) (*domain.Grid, error) {
	if !variant.IsValid() {
		return nil, domain.NewValidationError("variant", `must be either "rasi" or "navamsa"`)
	}

	key := layoutCacheKey(id, variant)
	if cached, err := s.Cache.Get(ctx, key); err == nil && cached != "" {
		// кэш не знает владельца, право доступа проверяем всегда
		if _, err := s.Get(ctx, ownerID, id); err != nil {
			return nil, err
		}
		var grid domain.Grid
		if err := json.Unmarshal([]byte(cached), &grid); err == nil {
			return &grid, nil
		}
		s.Log.Warn("failed to decode cached layout, rebuilding",
			"chart_id", id,
			"variant", variant,
		)
	}

	record, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	grid, err := BuildGrid(record, variant)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(grid); err == nil {
		if err := s.Cache.Set(ctx, key, string(data), layoutCacheTTL); err != nil {
			s.Log.Warn("failed to cache layout",
				"error", err,
				"chart_id", id,
				"variant", variant,
			)
		}
	}

	return grid, nil
}

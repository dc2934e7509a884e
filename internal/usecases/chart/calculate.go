package chart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/admin/astro-services/natal-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// rawPayloadSchemaVersion метка схемы сырого слепка провайдера
const rawPayloadSchemaVersion = "prokerala/v2"

// Calculate прогоняет полный пайплайн расчёта: валидация профиля,
// параллельные запросы к провайдеру за обоими вариантами карты,
// нормализация и единственная запись в хранилище. Частичных записей
// не бывает: любая фатальная ошибка до Create оставляет БД нетронутой.
func (s *Service) Calculate(ctx context.Context, ownerID uuid.UUID, profile *domain.BirthProfile) (*domain.ChartRecord, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(profile.PlaceOfBirth) == "" {
		profile.PlaceOfBirth = domain.DefaultPlaceOfBirth
	}

	instant, err := domain.BirthMoment(profile.DateOfBirth, profile.TimeOfBirth)
	if err != nil {
		return nil, err
	}

	s.Log.Info("chart calculation started",
		"owner_id", ownerID,
		"birth_moment", instant,
	)

	var (
		rasiRaw, navamsaRaw       []byte
		rasiMarkup, navamsaMarkup []byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rasiRaw, err = s.Provider.FetchPlanetPositions(gctx, instant, domain.VariantRasi, domain.AyanamsaLahiri)
		if err != nil {
			return fmt.Errorf("failed to fetch rasi positions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		navamsaRaw, err = s.Provider.FetchPlanetPositions(gctx, instant, domain.VariantNavamsa, domain.AyanamsaLahiri)
		if err != nil {
			return fmt.Errorf("failed to fetch navamsa positions: %w", err)
		}
		return nil
	})
	// SVG-разметка не обязательна: при ошибке запись сохраняется без неё
	g.Go(func() error {
		markup, err := s.Provider.FetchChartMarkup(gctx, instant, domain.VariantRasi, domain.AyanamsaLahiri)
		if err != nil {
			s.Log.Warn("failed to fetch rasi chart markup",
				"error", err,
				"owner_id", ownerID,
			)
			return nil
		}
		rasiMarkup = markup
		return nil
	})
	g.Go(func() error {
		markup, err := s.Provider.FetchChartMarkup(gctx, instant, domain.VariantNavamsa, domain.AyanamsaLahiri)
		if err != nil {
			s.Log.Warn("failed to fetch navamsa chart markup",
				"error", err,
				"owner_id", ownerID,
			)
			return nil
		}
		navamsaMarkup = markup
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rasiChart, err := normalizeChart(rasiRaw, domain.VariantRasi)
	if err != nil {
		return nil, err
	}
	navamsaChart, err := normalizeChart(navamsaRaw, domain.VariantNavamsa)
	if err != nil {
		return nil, err
	}

	summary := extractSummary(rasiRaw)

	now := time.Now().UTC()
	record := &domain.ChartRecord{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		FullName:     profile.FullName,
		DateOfBirth:  profile.DateOfBirth,
		TimeOfBirth:  profile.TimeOfBirth,
		PlaceOfBirth: profile.PlaceOfBirth,
		Gender:       profile.Gender,
		Rasi:         summary.Rasi,
		Nakshatra:    summary.Nakshatra,
		Ascendant:    summary.Ascendant,
		RasiChart:    *rasiChart,
		NavamsaChart: *navamsaChart,
		RawPayload: domain.RawCapture{
			SchemaVersion: rawPayloadSchemaVersion,
			Rasi:          rasiRaw,
			Navamsa:       navamsaRaw,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(rasiMarkup) > 0 {
		svg := string(rasiMarkup)
		record.RasiSVG = &svg
	}
	if len(navamsaMarkup) > 0 {
		svg := string(navamsaMarkup)
		record.NavamsaSVG = &svg
	}

	if err := s.ChartRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.Log.Info("chart record persisted",
		"chart_id", record.ID,
		"owner_id", ownerID,
		"rasi", record.Rasi,
		"nakshatra", record.Nakshatra,
	)

	s.publishCreated(ctx, record)
	s.archiveMarkup(ctx, record)

	return record, nil
}

// publishCreated отправляет событие о созданной записи, ошибки не фатальны
func (s *Service) publishCreated(ctx context.Context, record *domain.ChartRecord) {
	if s.Events == nil {
		return
	}
	if err := s.Events.SendChartCreated(ctx, record); err != nil {
		s.Log.Warn("failed to publish chart created event",
			"error", err,
			"chart_id", record.ID,
		)
	}
}

// archiveMarkup складывает SVG-разметку в объектное хранилище, ошибки не фатальны
func (s *Service) archiveMarkup(ctx context.Context, record *domain.ChartRecord) {
	if s.Archive == nil {
		return
	}
	variants := []struct {
		tag domain.VariantTag
		svg *string
	}{
		{domain.VariantRasi, record.RasiSVG},
		{domain.VariantNavamsa, record.NavamsaSVG},
	}
	for _, v := range variants {
		if v.svg == nil {
			continue
		}
		path := fmt.Sprintf("charts/%s/%s.svg", record.ID, v.tag)
		if err := s.Archive.PutFile(ctx, path, []byte(*v.svg), "image/svg+xml"); err != nil {
			s.Log.Warn("failed to archive chart markup",
				"error", err,
				"chart_id", record.ID,
				"variant", v.tag,
			)
		}
	}
}

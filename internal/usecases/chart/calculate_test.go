package chart

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/admin/astro-services/natal-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	created []*domain.ChartRecord
	byID    map[uuid.UUID]*domain.ChartRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*domain.ChartRecord)}
}

func (r *fakeRepo) Create(ctx context.Context, record *domain.ChartRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, record)
	r.byID[record.ID] = record
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChartRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrChartNotFound
	}
	return record, nil
}

func (r *fakeRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ChartRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []*domain.ChartRecord
	for _, record := range r.created {
		if record.OwnerID == ownerID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[id]
	if !ok || record.OwnerID != ownerID {
		return domain.ErrChartNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeProvider struct {
	mu           sync.Mutex
	instants     []string
	positions    map[domain.VariantTag][]byte
	positionsErr error
	markup       map[domain.VariantTag][]byte
	markupErr    error
}

func (p *fakeProvider) FetchPlanetPositions(ctx context.Context, instant string, variant domain.VariantTag, ayanamsa int) ([]byte, error) {
	p.mu.Lock()
	p.instants = append(p.instants, instant)
	p.mu.Unlock()
	if p.positionsErr != nil {
		return nil, p.positionsErr
	}
	return p.positions[variant], nil
}

func (p *fakeProvider) FetchChartMarkup(ctx context.Context, instant string, variant domain.VariantTag, ayanamsa int) ([]byte, error) {
	if p.markupErr != nil {
		return nil, p.markupErr
	}
	return p.markup[variant], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testService(repo *fakeRepo, provider *fakeProvider) *Service {
	return New(repo, provider, newFakeCache(), nil, nil, discardLogger())
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func (c *fakeCache) Close() error { return nil }

func goodPositions() []byte {
	return []byte(`{
		"data": {
			"chandra_rasi": {"name": "Vrishabha"},
			"nakshatra": {"name": "Rohini"},
			"ascendant": {"name": "Simha"},
			"planet_position": [
				{"name": "Sun", "sign": "Leo", "house": 1},
				{"name": "Moon", "sign": "Taurus", "house": 10}
			]
		}
	}`)
}

func TestCalculateSuccess(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{
		positions: map[domain.VariantTag][]byte{
			domain.VariantRasi:    goodPositions(),
			domain.VariantNavamsa: goodPositions(),
		},
		markup: map[domain.VariantTag][]byte{
			domain.VariantRasi:    []byte("<svg>rasi</svg>"),
			domain.VariantNavamsa: []byte("<svg>navamsa</svg>"),
		},
	}
	svc := testService(repo, provider)
	ownerID := uuid.New()

	record, err := svc.Calculate(context.Background(), ownerID, &domain.BirthProfile{
		FullName:    "Test Person",
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeOfBirth: "14:30",
		Gender:      domain.GenderMale,
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, record, repo.created[0])

	assert.Equal(t, ownerID, record.OwnerID)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "Vrishabha", record.Rasi)
	assert.Equal(t, "Rohini", record.Nakshatra)
	assert.Equal(t, "Simha", record.Ascendant)
	assert.Len(t, record.RasiChart.Planets, 2)
	assert.Len(t, record.NavamsaChart.Planets, 2)

	// Место рождения подставляется дефолтное
	assert.Equal(t, domain.DefaultPlaceOfBirth, record.PlaceOfBirth)

	require.NotNil(t, record.RasiSVG)
	assert.Equal(t, "<svg>rasi</svg>", *record.RasiSVG)
	require.NotNil(t, record.NavamsaSVG)

	// Сырые ответы провайдера сохранены как есть
	assert.Equal(t, "prokerala/v2", record.RawPayload.SchemaVersion)
	assert.JSONEq(t, string(goodPositions()), string(record.RawPayload.Rasi))

	// Оба варианта запрошены одним и тем же моментом рождения
	require.Len(t, provider.instants, 2)
	assert.Equal(t, "1990-01-15T14:30:00+05:30", provider.instants[0])
	assert.Equal(t, provider.instants[0], provider.instants[1])
}

func TestCalculateValidationError(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{}
	svc := testService(repo, provider)

	_, err := svc.Calculate(context.Background(), uuid.New(), &domain.BirthProfile{
		FullName:    "",
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeOfBirth: "14:30",
		Gender:      domain.GenderMale,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	// Провайдер не вызывался, БД нетронута
	assert.Empty(t, provider.instants)
	assert.Empty(t, repo.created)
}

func TestCalculateProviderError(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{
		positionsErr: &domain.ProviderError{StatusCode: 500, Message: "boom"},
	}
	svc := testService(repo, provider)

	_, err := svc.Calculate(context.Background(), uuid.New(), &domain.BirthProfile{
		FullName:    "Test Person",
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeOfBirth: "14:30",
		Gender:      domain.GenderFemale,
	})
	require.Error(t, err)
	assert.True(t, domain.IsProviderError(err))
	assert.Empty(t, repo.created)
}

func TestCalculateNormalizationError(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{
		positions: map[domain.VariantTag][]byte{
			domain.VariantRasi:    []byte(`{"data": {}}`),
			domain.VariantNavamsa: []byte(`{"data": {}}`),
		},
	}
	svc := testService(repo, provider)

	_, err := svc.Calculate(context.Background(), uuid.New(), &domain.BirthProfile{
		FullName:    "Test Person",
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeOfBirth: "14:30",
		Gender:      domain.GenderOther,
	})
	require.Error(t, err)
	assert.True(t, domain.IsNormalizationError(err))
	assert.Empty(t, repo.created)
}

func TestCalculateMarkupFailureTolerated(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{
		positions: map[domain.VariantTag][]byte{
			domain.VariantRasi:    goodPositions(),
			domain.VariantNavamsa: goodPositions(),
		},
		markupErr: &domain.ProviderError{StatusCode: 503, Message: "svg unavailable"},
	}
	svc := testService(repo, provider)

	record, err := svc.Calculate(context.Background(), uuid.New(), &domain.BirthProfile{
		FullName:     "Test Person",
		DateOfBirth:  time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeOfBirth:  "14:30",
		PlaceOfBirth: "Mumbai, India",
		Gender:       domain.GenderFemale,
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Nil(t, record.RasiSVG)
	assert.Nil(t, record.NavamsaSVG)
	assert.Equal(t, "Mumbai, India", record.PlaceOfBirth)
}

func TestCalculateMissingNakshatraStillPersists(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{
		positions: map[domain.VariantTag][]byte{
			domain.VariantRasi:    []byte(`{"data": {"planet_position": [{"name": "Sun", "sign": "Leo", "house": 1}]}}`),
			domain.VariantNavamsa: []byte(`{"data": {"planet_position": [{"name": "Sun", "sign": "Aries", "house": 7}]}}`),
		},
	}
	svc := testService(repo, provider)

	record, err := svc.Calculate(context.Background(), uuid.New(), &domain.BirthProfile{
		FullName:    "Test Person",
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeOfBirth: "14:30",
		Gender:      domain.GenderMale,
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Unknown", record.Rasi)
	assert.Equal(t, "Unknown", record.Nakshatra)
	assert.Equal(t, "Unknown", record.Ascendant)
}

func TestGetOwnershipCheck(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, &fakeProvider{})

	owner := uuid.New()
	record := testRecord()
	record.OwnerID = owner
	require.NoError(t, repo.Create(context.Background(), record))

	got, err := svc.Get(context.Background(), owner, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)

	// Чужая запись неотличима от несуществующей
	_, err = svc.Get(context.Background(), uuid.New(), record.ID)
	assert.ErrorIs(t, err, domain.ErrChartNotFound)
}

func TestLayoutUsesCache(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, &fakeProvider{})

	owner := uuid.New()
	record := testRecord()
	record.OwnerID = owner
	require.NoError(t, repo.Create(context.Background(), record))

	first, err := svc.Layout(context.Background(), owner, record.ID, domain.VariantRasi)
	require.NoError(t, err)

	// Второй вызов читает из кэша и возвращает ту же раскладку
	second, err := svc.Layout(context.Background(), owner, record.ID, domain.VariantRasi)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLayoutInvalidVariant(t *testing.T) {
	svc := testService(newFakeRepo(), &fakeProvider{})

	_, err := svc.Layout(context.Background(), uuid.New(), uuid.New(), domain.VariantTag("d10"))
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestDeleteInvalidatesLayoutCache(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, &fakeProvider{})
	cacheClient := svc.Cache.(*fakeCache)

	owner := uuid.New()
	record := testRecord()
	record.OwnerID = owner
	require.NoError(t, repo.Create(context.Background(), record))

	_, err := svc.Layout(context.Background(), owner, record.ID, domain.VariantRasi)
	require.NoError(t, err)

	exists, err := cacheClient.Exists(context.Background(), layoutCacheKey(record.ID, domain.VariantRasi))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.Delete(context.Background(), owner, record.ID))

	exists, err = cacheClient.Exists(context.Background(), layoutCacheKey(record.ID, domain.VariantRasi))
	require.NoError(t, err)
	assert.False(t, exists)
}

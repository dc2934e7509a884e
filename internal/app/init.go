package app

import (
	"fmt"
	"net/http"

	server "github.com/admin/astro-services/natal-api/internal/adapters/primary/http"
	chartController "github.com/admin/astro-services/natal-api/internal/adapters/primary/http/controllers/chart"
	healthcheckController "github.com/admin/astro-services/natal-api/internal/adapters/primary/http/controllers/healthcheck"
	kafkaAdapter "github.com/admin/astro-services/natal-api/internal/adapters/secondary/kafka"
	"github.com/admin/astro-services/natal-api/internal/adapters/secondary/prokerala"
	"github.com/admin/astro-services/natal-api/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/astro-services/natal-api/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astro-services/natal-api/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/astro-services/natal-api/internal/adapters/secondary/storage/s3"
	"github.com/admin/astro-services/natal-api/internal/ports/cache"
	"github.com/admin/astro-services/natal-api/internal/ports/kafka"
	"github.com/admin/astro-services/natal-api/internal/ports/storage"
	chartRepo "github.com/admin/astro-services/natal-api/internal/repository/chart"
	chartUsecase "github.com/admin/astro-services/natal-api/internal/usecases/chart"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB            *sqlx.DB
	HTTPServer    *http.Server
	Cache         cache.Cache
	EventProducer *kafkaAdapter.Producer
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies() (*Dependencies, error) {
	// Ключ провайдера обязателен, проверяем до любых подключений
	if a.Cfg.Prokerala == nil {
		return nil, fmt.Errorf("prokerala configuration is missing")
	}
	if err := a.Cfg.Prokerala.Validate(); err != nil {
		return nil, err
	}

	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	persistenceLayer := pg.NewDB(db)
	repo := chartRepo.New(persistenceLayer, a.Log)
	provider := prokerala.NewClient(a.Cfg.Prokerala, a.Log)

	cacheClient := a.initCache()
	producer := a.initEventProducer()
	archive := a.initArchive()

	var events kafka.IChartEventProducer
	if producer != nil {
		events = producer
	}

	chartService := chartUsecase.New(repo, provider, cacheClient, events, archive, a.Log)

	controllers := []server.Controller{
		healthcheckController.New(db, a.Log),
		chartController.New(chartService, a.Log),
	}
	httpServer := server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)

	return &Dependencies{
		DB:            db,
		HTTPServer:    httpServer,
		Cache:         cacheClient,
		EventProducer: producer,
	}, nil
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres() (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(db, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// initCache подключает Redis, при недоступности откатывается на in-memory кэш
func (a *App) initCache() cache.Cache {
	if a.Cfg.Redis.IsEnabled() {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, falling back to in-memory", "error", err)
		} else {
			a.Log.Info("redis cache connected successfully")
			return redisAdapter.NewClient(redisClient)
		}
	}
	return inmemory.NewCache()
}

// initEventProducer создаёт Kafka producer (опциональный)
func (a *App) initEventProducer() *kafkaAdapter.Producer {
	if !a.Cfg.Kafka.IsEnabled() {
		return nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka producer, events disabled", "error", err)
		return nil
	}
	return producer
}

// initArchive создаёт S3 клиент для архива SVG-разметки (опциональный)
func (a *App) initArchive() storage.IS3Client {
	if !a.Cfg.S3.IsEnabled() {
		return nil
	}

	minioClient, err := a.Cfg.S3.NewClient()
	if err != nil {
		a.Log.Warn("failed to create s3 client, markup archive disabled", "error", err)
		return nil
	}

	a.Log.Info("s3 archive connected successfully", "bucket", a.Cfg.S3.Bucket)
	return s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
}

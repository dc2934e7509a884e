package app

import (
	server "github.com/admin/astro-services/natal-api/internal/adapters/primary/http"
	kafkaAdapter "github.com/admin/astro-services/natal-api/internal/adapters/secondary/kafka"
	"github.com/admin/astro-services/natal-api/internal/adapters/secondary/prokerala"
	"github.com/admin/astro-services/natal-api/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astro-services/natal-api/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/astro-services/natal-api/internal/adapters/secondary/storage/s3"
	"github.com/admin/astro-services/natal-api/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres  *pg.Config           `envconfig:"POSTGRES"`
	Log       *logger.Config       `envconfig:"LOG"`
	Server    *server.Config       `envconfig:"APISERVER"`
	Prokerala *prokerala.Config    `envconfig:"PROKERALA"`
	Redis     *redisAdapter.Config `envconfig:"REDIS"`
	S3        *s3Adapter.Config    `envconfig:"S3"`
	Kafka     *kafkaAdapter.Config `envconfig:"KAFKA"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

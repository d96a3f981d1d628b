package infra

import (
	"context"
	"log"

	"github.com/campuskit/course-file-service/config"
	"github.com/campuskit/course-file-service/infra/produce"
)

type Infra struct {
	Postgres  *PostgresClient
	Minio     *MinioClient
	Logger    *LoggerClient
	Telemetry *TelemetryClient
	Redis     *RedisClient
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	telemetry := InitTelemetry(cfg.EnvConfig)

	// Redis and RabbitMQ are optional. Without Redis the signed-URL cache
	// falls back to memory; without RabbitMQ orphan objects are recorded
	// in Postgres only.
	var redis *RedisClient
	if cfg.EnvConfig.Redis.Enabled {
		redis = InitRedisClient(cfg.EnvConfig)
	} else {
		log.Println("Redis not configured, signed-URL cache will use memory")
	}

	var rabbitMQ *RabbitMQClient
	var produceService *produce.Produce
	if cfg.EnvConfig.RabbitMQ.Enabled {
		rabbitMQ = InitRabbitMQClient(cfg.EnvConfig)
		produceService = produce.InitProduce(rabbitMQ.Channel)
		if produceService == nil {
			panic("Failed to initialize Produce service")
		}
	} else {
		log.Println("RabbitMQ not configured, orphan objects will not be published")
	}

	infraInstance = &Infra{
		Postgres:  postgres,
		Minio:     minio,
		Logger:    logger,
		Telemetry: telemetry,
		Redis:     redis,
		RabbitMQ:  rabbitMQ,
		Produce:   produceService,
	}

	return infraInstance
}

func (i *Infra) Close(ctx context.Context) {
	if i.RabbitMQ != nil {
		i.RabbitMQ.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.Telemetry != nil {
		_ = i.Telemetry.Shutdown(ctx)
	}
	_ = i.Logger.Close(ctx)
}

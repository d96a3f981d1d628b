package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type EnvConfig struct {
	Postgres struct {
		Host     string
		Database string
		Username string
		Password string
		Port     string
	}
	JWT struct {
		SecretKey string
		Algorithm string
		Expire    int
	}
	CORS struct {
		AllowDomains string
		GlobalDomain string
	}
	Redis struct {
		Enabled   bool
		Password  string
		Database  int
		RedisHost string
		RedisPort string
	}
	RabbitMQ struct {
		Enabled  bool
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}
	SignedURL struct {
		TTLSeconds    int // server-side presign expiry
		BufferSeconds int // safety margin subtracted from the cache TTL
	}
	Upload struct {
		MaxFileSize int64 // hard cap per multipart file, bytes
	}
	Telemetry struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode string
	}
	Port string
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.Host = os.Getenv("POSTGRES_HOST")
	config.Postgres.Database = os.Getenv("POSTGRES_DB")
	config.Postgres.Username = os.Getenv("POSTGRES_USER")
	config.Postgres.Password = os.Getenv("POSTGRES_PASSWORD")
	config.Postgres.Port = os.Getenv("POSTGRES_PORT")
	if config.Postgres.Port == "" {
		config.Postgres.Port = "5432"
	}

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")
	config.JWT.Algorithm = os.Getenv("JWT_ALGORITHM")
	if val := os.Getenv("JWT_EXPIRE"); val != "" {
		fmt.Sscanf(val, "%d", &config.JWT.Expire)
	} else {
		config.JWT.Expire = 3600 * 24 * 7
	}

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")
	config.CORS.GlobalDomain = os.Getenv("GLOBAL_DOMAIN")

	// Redis (optional: the signed-url cache falls back to in-memory when absent)
	config.Redis.RedisHost = os.Getenv("REDIS_HOST")
	config.Redis.RedisPort = os.Getenv("REDIS_PORT")
	if config.Redis.RedisPort == "" {
		config.Redis.RedisPort = "6379"
	}
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.Enabled = config.Redis.RedisHost != ""

	// RabbitMQ (optional: reconcile messages are skipped when absent)
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}
	config.RabbitMQ.Enabled = config.RabbitMQ.Host != ""

	// MinIO
	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	config.Minio.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	config.Minio.Bucket = os.Getenv("MINIO_BUCKET")
	if config.Minio.Bucket == "" {
		config.Minio.Bucket = "course-files"
	}
	config.Minio.UseSSL = strings.EqualFold(os.Getenv("MINIO_USE_SSL"), "true")

	// Signed URL presign window
	if val := os.Getenv("SIGNED_URL_TTL"); val != "" {
		config.SignedURL.TTLSeconds, _ = strconv.Atoi(val)
	}
	if config.SignedURL.TTLSeconds == 0 {
		config.SignedURL.TTLSeconds = 900
	}
	if val := os.Getenv("SIGNED_URL_CACHE_BUFFER"); val != "" {
		config.SignedURL.BufferSeconds, _ = strconv.Atoi(val)
	}
	if config.SignedURL.BufferSeconds == 0 {
		config.SignedURL.BufferSeconds = 60
	}

	// Upload limits
	if val := os.Getenv("UPLOAD_MAX_FILE_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.Upload.MaxFileSize = size
		}
	}
	if config.Upload.MaxFileSize == 0 {
		config.Upload.MaxFileSize = 5 * 1024 * 1024 // matches the strictest slot limit
	}

	// OpenTelemetry
	otlpEndpoint := os.Getenv("OTLP_ENDPOINT")
	otlpEndpoint = strings.TrimPrefix(otlpEndpoint, "https://")
	otlpEndpoint = strings.TrimPrefix(otlpEndpoint, "http://")
	config.Telemetry.OTLPEndpoint = otlpEndpoint
	config.Telemetry.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Telemetry.ServiceName == "" {
		config.Telemetry.ServiceName = "course-file-service"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	config.Port = os.Getenv("PORT")
	if config.Port == "" {
		config.Port = "8080"
	}

	return &config
}

package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env        Env
	Server     ServerConfig
	Minio      MinioConfig
	Inspection InspectionConfig
	Upload     UploadConfig
	NATS       NATSConfig
	Database   DatabaseConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint         string `envconfig:"MINIO_ENDPOINT" required:"true"`
	AccessKey        string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey        string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	StagingBucket    string `envconfig:"MINIO_STAGING_BUCKET" default:"recordings-staging"`
	RecordingsBucket string `envconfig:"MINIO_RECORDINGS_BUCKET" default:"recordings"`
	UseSSL           bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// InspectionConfig bounds what a selected recording may look like before the
// transfer is allowed to start.
type InspectionConfig struct {
	MinSizeBytes       int64   `envconfig:"INSPECT_MIN_SIZE_BYTES" default:"5242880"`        // 5MiB
	MaxSizeBytes       int64   `envconfig:"INSPECT_MAX_SIZE_BYTES" default:"524288000"`      // 500MiB
	ProbeTierMaxBytes  int64   `envconfig:"INSPECT_PROBE_TIER_MAX_BYTES" default:"52428800"` // 50MiB
	MinDurationMinutes float64 `envconfig:"INSPECT_MIN_DURATION_MINUTES" default:"5"`
	MaxDurationMinutes float64 `envconfig:"INSPECT_MAX_DURATION_MINUTES" default:"90"`
}

type UploadConfig struct {
	SessionTTL   time.Duration `envconfig:"UPLOAD_SESSION_TTL" default:"30m"`
	CleanupEvery time.Duration `envconfig:"UPLOAD_CLEANUP_EVERY" default:"15m"`
}

type NATSConfig struct {
	URL        string `envconfig:"NATS_URL" required:"true"`
	StreamName string `envconfig:"NATS_STREAM_NAME" required:"true"`
	Subject    string `envconfig:"NATS_SUBJECT" required:"true"`
	ClientName string `envconfig:"NATS_CLIENT_NAME" default:"therassist-intake"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// rate limits
	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`
	CoachRateLimitAllowedPerMin int `toml:"coach_rate_limit_allowed_per_min"`

	// ai coach
	CoachBaseURL string `toml:"coach_base_url"`
	CoachModel   string `toml:"coach_model"`

	// exercise catalog
	ExerciseDBHost string `toml:"exercisedb_host"`

	// avatars blob store: "disk" or "s3"
	BlobStoreKind     string `toml:"blob_store_kind"`
	BlobStoreDiskRoot string `toml:"blob_store_disk_root"`
	BlobStoreS3Bucket string `toml:"blob_store_s3_bucket"`
	BlobStoreS3Region string `toml:"blob_store_s3_region"`
	BlobPublicBaseURL string `toml:"blob_public_base_url"`

	// unix socket the backups cmd reports to, empty dir disables it
	BackupsSocketDir  string `toml:"backups_socket_dir"`
	BackupsSocketFile string `toml:"backups_socket_file"`

	// allowed CORS origins
	AllowedOrigins []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.CoachRateLimitAllowedPerMin <= 0 {
		c.CoachRateLimitAllowedPerMin = 20
	}
	if c.CoachBaseURL == "" {
		c.CoachBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.CoachModel == "" {
		c.CoachModel = "gemini-pro"
	}
	if c.ExerciseDBHost == "" {
		c.ExerciseDBHost = "exercisedb.p.rapidapi.com"
	}
	if c.BackupsSocketFile == "" {
		c.BackupsSocketFile = "liftlog-backups.sock"
	}
	if c.BlobStoreKind == "" {
		c.BlobStoreKind = "disk"
	}
}

// Package config provides application configuration loaded from environment
// variables, optional .env files and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // seconds
}

// StorageConfig selects and configures the persistence adapter.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Dir    string `mapstructure:"dir"`
	DSN    string `mapstructure:"dsn"`

	S3Bucket           string `mapstructure:"s3_bucket"`
	S3Prefix           string `mapstructure:"s3_prefix"`
	AWSRegion          string `mapstructure:"aws_region"`
	AWSAccessKeyID     string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey string `mapstructure:"aws_secret_access_key"`
}

// TelegramConfig enables invoice notifications when Token is set.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// Enabled reports whether notifications can be sent.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env              string `mapstructure:"env"`
	LogLevel         string `mapstructure:"log_level"`
	Seed             bool   `mapstructure:"seed"`
	StatusPermissive bool   `mapstructure:"status_permissive"`
	MetricsEnabled   bool   `mapstructure:"metrics_enabled"`
}

// Storage drivers understood by storage.Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverMySQL    = "mysql"
	DriverS3       = "s3"
)

var drivers = map[string]bool{
	DriverMemory: true, DriverFile: true, DriverSQLite: true, DriverPostgres: true,
	DriverPgx: true, DriverMySQL: true, DriverS3: true,
}

// env variable names for each configuration key.
var envKeys = map[string]string{
	"server.port":                   "PORT",
	"server.read_timeout":           "SERVER_READ_TIMEOUT",
	"server.write_timeout":          "SERVER_WRITE_TIMEOUT",
	"server.idle_timeout":           "SERVER_IDLE_TIMEOUT",
	"storage.driver":                "STORAGE_DRIVER",
	"storage.dir":                   "STORAGE_DIR",
	"storage.dsn":                   "STORAGE_DSN",
	"storage.s3_bucket":             "STORAGE_S3_BUCKET",
	"storage.s3_prefix":             "STORAGE_S3_PREFIX",
	"storage.aws_region":            "AWS_REGION",
	"storage.aws_access_key_id":     "AWS_ACCESS_KEY_ID",
	"storage.aws_secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"telegram.token":                "TELEGRAM_TOKEN",
	"telegram.chat_id":              "TELEGRAM_CHAT_ID",
	"app.env":                       "GO_ENV",
	"app.log_level":                 "LOG_LEVEL",
	"app.seed":                      "SEED",
	"app.status_permissive":         "STATUS_PERMISSIVE",
	"app.metrics_enabled":           "METRICS_ENABLED",
}

// Load reads .env files, then the environment and the YAML file named by
// CONFIG_FILE, if any. .env.<GO_ENV> is tried before .env.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	if err := godotenv.Load(".env." + env); err != nil {
		// a missing .env is fine: variables may come from the environment
		_ = godotenv.Load()
	}
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile builds the configuration from defaults, the optional YAML file at
// path and the environment, in increasing order of precedence.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.s3_prefix", "devis/")
	v.SetDefault("storage.aws_region", "eu-west-3")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.seed", true)
	v.SetDefault("app.status_permissive", false)
	v.SetDefault("app.metrics_enabled", true)
}

// Validate checks that the selected storage driver is fully configured.
func (c *Config) Validate() error {
	s := c.Storage
	if !drivers[s.Driver] {
		return fmt.Errorf("unknown STORAGE_DRIVER %q", s.Driver)
	}
	switch s.Driver {
	case DriverFile:
		if s.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required for the %s driver", s.Driver)
		}
	case DriverPostgres, DriverPgx, DriverMySQL:
		if s.DSN == "" {
			return fmt.Errorf("STORAGE_DSN is required for the %s driver", s.Driver)
		}
	case DriverS3:
		if s.S3Bucket == "" {
			return fmt.Errorf("STORAGE_S3_BUCKET is required for the %s driver", s.Driver)
		}
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}

// SQLitePath returns the database file used by the sqlite driver.
func (s StorageConfig) SQLitePath() string {
	if s.DSN != "" {
		return s.DSN
	}
	return filepath.Join(s.Dir, "devis.db")
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CHEFAID_SERVER_PORT
const EnvPrefix = "CHEFAID"

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Oracle client providers
const (
	ProviderREST  = "rest"
	ProviderGenAI = "genai"
)

// SecretBackendKeyring keeps the API key in the OS keychain
const SecretBackendKeyring = "keyring"

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Export     ExportConfig     `mapstructure:"export"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string   `mapstructure:"name"`
	Version     string   `mapstructure:"version"`
	Environment string   `mapstructure:"environment"`
	Debug       bool     `mapstructure:"debug"`
	LogLevel    string   `mapstructure:"log_level"`
	LogFormat   string   `mapstructure:"log_format"`
	LogOutput   []string `mapstructure:"log_output"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	EnableCORS      bool          `mapstructure:"enable_cors"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	TrustedProxies  []string      `mapstructure:"trusted_proxies"`
}

// AIConfig configures the text generation oracle client
type AIConfig struct {
	Provider        string        `mapstructure:"provider"`
	BaseURL         string        `mapstructure:"base_url"`
	Model           string        `mapstructure:"model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// StorageConfig selects where settings are persisted
type StorageConfig struct {
	Driver        string         `mapstructure:"driver"`
	SQLitePath    string         `mapstructure:"sqlite_path"`
	Postgres      PostgresConfig `mapstructure:"postgres"`
	SecretBackend string         `mapstructure:"secret_backend"`
	Keyring       KeyringConfig  `mapstructure:"keyring"`
}

// PostgresConfig contains the shared settings database configuration
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// KeyringConfig configures the API key secret store
type KeyringConfig struct {
	ServiceName  string   `mapstructure:"service_name"`
	Backends     []string `mapstructure:"backends"`
	FileDir      string   `mapstructure:"file_dir"`
	FilePassword string   `mapstructure:"file_password"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// ExportConfig controls where exported calendars are written
type ExportConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics bool    `mapstructure:"enable_metrics"`
	EnableTracing bool    `mapstructure:"enable_tracing"`
	OTLPEndpoint  string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure  bool    `mapstructure:"otlp_insecure"`
	SamplingRate  float64 `mapstructure:"sampling_rate"`

	// HealthCacheTTL is how long an aggregated health response is reused
	HealthCacheTTL time.Duration `mapstructure:"health_cache_ttl"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enable         bool `mapstructure:"enable"`
	RequestsPerMin int  `mapstructure:"requests_per_min"`
	BurstSize      int  `mapstructure:"burst_size"`
}

// Load loads configuration from .env files, an optional config file and
// environment variables, in increasing order of precedence
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("chefaid")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "chefaid"))
		}
	}

	// Enable environment variable override
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadDotEnv exports variables from a .env file without overriding the
// real environment. A missing file is ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	dataDir := defaultDataDir()

	// App defaults
	v.SetDefault("app.name", "Chef Aid")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")
	v.SetDefault("app.log_output", []string{"stdout"})

	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.request_timeout", "90s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.max_header_bytes", 1<<20) // 1MB
	v.SetDefault("server.max_body_bytes", 10<<20)  // fridge photos
	v.SetDefault("server.enable_cors", true)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Oracle defaults
	v.SetDefault("ai.provider", ProviderREST)
	v.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.temperature", 0.9)
	v.SetDefault("ai.max_output_tokens", 2048)
	v.SetDefault("ai.timeout", "60s")

	// Storage defaults
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", filepath.Join(dataDir, "settings.db"))
	v.SetDefault("storage.postgres.max_open_conns", 10)
	v.SetDefault("storage.postgres.max_idle_conns", 2)
	v.SetDefault("storage.postgres.conn_max_lifetime", "30m")
	v.SetDefault("storage.postgres.conn_max_idle_time", "5m")
	v.SetDefault("storage.postgres.connect_timeout", "10s")
	v.SetDefault("storage.keyring.service_name", "chefaid")

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "chefaid:settings:")

	// Export defaults
	v.SetDefault("export.enabled", true)
	v.SetDefault("export.directory", filepath.Join(dataDir, "exports"))

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.enable_tracing", false)
	v.SetDefault("monitoring.otlp_endpoint", "localhost:4318")
	v.SetDefault("monitoring.otlp_insecure", true)
	v.SetDefault("monitoring.sampling_rate", 0.1)
	v.SetDefault("monitoring.health_cache_ttl", "5s")

	// Rate limit defaults
	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.requests_per_min", 60)
	v.SetDefault("rate_limit.burst_size", 10)
}

// defaultDataDir is the per-user directory for the settings database and
// exported files
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "chefaid")
	}
	return ".chefaid"
}

// Validate checks the whole configuration and reports every problem at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.App.Name == "" {
		result = multierror.Append(result, errors.New("app.name is required"))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.App.LogLevel) {
		result = multierror.Append(result, fmt.Errorf("app.log_level %q is not one of debug, info, warn, error", c.App.LogLevel))
	}
	if c.App.LogFormat != "json" && c.App.LogFormat != "console" {
		result = multierror.Append(result, fmt.Errorf("app.log_format %q is not json or console", c.App.LogFormat))
	}

	// Validate port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		result = multierror.Append(result, errors.New("server.port must be between 1 and 65535"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		result = multierror.Append(result, errors.New("server.max_body_bytes must be positive"))
	}

	if c.AI.Provider != ProviderREST && c.AI.Provider != ProviderGenAI {
		result = multierror.Append(result, fmt.Errorf("ai.provider %q is not rest or genai", c.AI.Provider))
	}
	if c.AI.Model == "" {
		result = multierror.Append(result, errors.New("ai.model is required"))
	}
	if c.AI.Timeout <= 0 {
		result = multierror.Append(result, errors.New("ai.timeout must be positive"))
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			result = multierror.Append(result, errors.New("storage.sqlite_path is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Storage.Postgres.DSN == "" {
			result = multierror.Append(result, errors.New("storage.postgres.dsn is required for the postgres driver"))
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			result = multierror.Append(result, errors.New("redis.addr is required for the redis driver"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}
	if c.Storage.SecretBackend != "" && c.Storage.SecretBackend != SecretBackendKeyring {
		result = multierror.Append(result, fmt.Errorf("storage.secret_backend %q is not supported", c.Storage.SecretBackend))
	}

	if c.Export.Enabled && c.Export.Directory == "" {
		result = multierror.Append(result, errors.New("export.directory is required when export is enabled"))
	}

	if c.Monitoring.SamplingRate < 0 || c.Monitoring.SamplingRate > 1 {
		result = multierror.Append(result, errors.New("monitoring.sampling_rate must be between 0 and 1"))
	}
	if c.Monitoring.HealthCacheTTL < 0 {
		result = multierror.Append(result, errors.New("monitoring.health_cache_ttl must not be negative"))
	}

	if c.RateLimit.Enable && (c.RateLimit.RequestsPerMin <= 0 || c.RateLimit.BurstSize <= 0) {
		result = multierror.Append(result, errors.New("rate_limit.requests_per_min and rate_limit.burst_size must be positive"))
	}

	return result.ErrorOrNil()
}

// Address returns the listen address of the HTTP server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

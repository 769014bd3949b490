package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override config.toml
const EnvPrefix = "MENU"

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Form      FormConfig      `mapstructure:"form"`
	Swagger   SwaggerConfig   `mapstructure:"swagger"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int           `mapstructure:"conn_max_lifetime"`  // in minutes
	ConnMaxIdleTime int           `mapstructure:"conn_max_idle_time"` // in minutes
	MigrateOnStart  bool          `mapstructure:"migrate_on_start"`
	SlowQuery       time.Duration `mapstructure:"slow_query"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig holds settings for verifying session tokens issued by the
// external authentication provider
type AuthConfig struct {
	Issuer       string        `mapstructure:"issuer"`
	Audience     string        `mapstructure:"audience"`
	SecretKey    string        `mapstructure:"secret_key"`     // HMAC key (HS256)
	PublicKeyPEM string        `mapstructure:"public_key_pem"` // RSA public key (RS256), takes precedence over SecretKey
	ClockSkew    time.Duration `mapstructure:"clock_skew"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes   int           `mapstructure:"max_header_bytes"`
	MaxBodySize      int64         `mapstructure:"max_body_size"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies   []string      `mapstructure:"trusted_proxies"`
}

// CacheConfig holds complement read cache settings
type CacheConfig struct {
	Driver string        `mapstructure:"driver"` // memory, redis, none
	TTL    time.Duration `mapstructure:"ttl"`
}

// StorageConfig holds object storage settings for product images
type StorageConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Bucket          string        `mapstructure:"bucket"`
	Region          string        `mapstructure:"region"`
	Endpoint        string        `mapstructure:"endpoint"` // custom endpoint for S3-compatible stores (MinIO, R2)
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UsePathStyle    bool          `mapstructure:"use_path_style"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
}

// FormConfig selects how the complement form talks to the catalog endpoints
type FormConfig struct {
	Gateway    string        `mapstructure:"gateway"`      // local (in-process services) or http
	APIBaseURL string        `mapstructure:"api_base_url"` // used by the http gateway
	Timeout    time.Duration `mapstructure:"timeout"`
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	RequireAuth bool     `mapstructure:"require_auth"`
	AllowedIPs  []string `mapstructure:"allowed_ips"` // single IPs or CIDRs, empty allows all
}

// MetricsConfig holds Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"` // OTEL Collector gRPC endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 `mapstructure:"sampling_ratio"`     // 0.0-1.0
	ServiceName       string  `mapstructure:"service_name"`
	Insecure          bool    `mapstructure:"insecure"`
	DBTraceEnabled    bool    `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool    `mapstructure:"db_log_full_sql"`
}

// Load reads config.toml (optional) and MENU_* environment variables, a
// local .env included, over the built-in defaults. Environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults registers every key with viper. Keys must be known for
// AutomaticEnv to reach them during Unmarshal, so keys without a real
// default are listed with their zero value.
var defaults = map[string]any{
	"app.name": "menudash-backend",
	"app.env":  "development",
	"app.port": "8080",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "menudash",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.migrate_on_start":   false,
	"database.slow_query":         200 * time.Millisecond,

	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"auth.issuer":         "",
	"auth.audience":       "",
	"auth.secret_key":     "",
	"auth.public_key_pem": "",
	"auth.clock_skew":     5 * time.Second,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":       15 * time.Second,
	"http.write_timeout":      15 * time.Second,
	"http.idle_timeout":       60 * time.Second,
	"http.max_header_bytes":   1 << 20,
	"http.max_body_size":      10 << 20,
	"http.cors_allow_origins": []string{},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":    []string{},

	"cache.driver": "memory",
	"cache.ttl":    5 * time.Minute,

	"storage.enabled":           false,
	"storage.bucket":            "",
	"storage.region":            "us-east-1",
	"storage.endpoint":          "",
	"storage.access_key_id":     "",
	"storage.secret_access_key": "",
	"storage.use_path_style":    false,
	"storage.presign_expiry":    15 * time.Minute,
	"storage.public_base_url":   "",

	"form.gateway":      "local",
	"form.api_base_url": "",
	"form.timeout":      10 * time.Second,

	"swagger.enabled":      false,
	"swagger.require_auth": false,
	"swagger.allowed_ips":  []string{},

	"metrics.enabled": false,
	"metrics.path":    "/metrics",

	"telemetry.enabled":            false,
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.sampling_ratio":     1.0,
	"telemetry.service_name":       "",
	"telemetry.insecure":           false,
	"telemetry.db_trace_enabled":   false,
	"telemetry.db_log_full_sql":    false,
}

// validate reports every problem found, not just the first.
func (c *Config) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	db := c.Database
	switch {
	case db.MaxOpenConns <= 0:
		fail("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		fail("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		fail("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)", db.MaxIdleConns, db.MaxOpenConns)
	}

	if !slices.Contains([]string{"memory", "redis", "none"}, c.Cache.Driver) {
		fail("cache.driver must be one of memory, redis, none, got %q", c.Cache.Driver)
	}

	switch c.Form.Gateway {
	case "local":
	case "http":
		if c.Form.APIBaseURL == "" {
			fail("form.api_base_url is required when form.gateway is http")
		}
	default:
		fail("form.gateway must be local or http, got %q", c.Form.Gateway)
	}

	if c.Storage.Enabled && c.Storage.Bucket == "" {
		fail("storage.bucket is required when storage is enabled")
	}
	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		fail("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", r)
	}

	if c.IsProduction() {
		if c.Auth.SecretKey == "" && c.Auth.PublicKeyPEM == "" {
			fail("auth.secret_key or auth.public_key_pem is required in production")
		}
		if db.Password == "" {
			fail("database.password is required in production")
		}
		if db.SSLMode == "disable" {
			fail("database.sslmode cannot be 'disable' in production")
		}
		if slices.Contains(c.HTTP.CORSAllowOrigins, "*") {
			fail("http.cors_allow_origins cannot be '*' in production")
		}
		if c.Telemetry.DBLogFullSQL {
			fail("telemetry.db_log_full_sql must be false in production")
		}
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

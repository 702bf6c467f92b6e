// Package config loads server configuration from the environment.
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the server configuration
type Config struct {
	// RedisAddr is a single Redis node. Ignored when RedisClusterAddrs is set.
	RedisAddr         string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisClusterAddrs []string `env:"REDIS_CLUSTER_ADDRS" envSeparator:","`
	RedisTLS          bool     `env:"REDIS_TLS"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/catalog.db"`

	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	DnD5eAPIURL string `env:"DND5E_API_URL" envDefault:"https://www.dnd5eapi.co/api/2014/"`

	// DiceSeed makes every roll reproducible; zero seeds from the OS
	DiceSeed   int64         `env:"DICE_SEED"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"15m"`

	// OTELEndpoint is the OTLP/HTTP collector; empty disables tracing
	OTELEndpoint    string `env:"OTEL_ENDPOINT"`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"rpg-companion"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// ShopAllowedOrigins restricts shop websocket origins; empty allows all
	ShopAllowedOrigins []string `env:"SHOP_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads .env files (default ".env") into the process environment and
// parses it. Missing files are skipped.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to load env file")
	}

	return Parse(nil)
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.InvalidArgumentf("failed to parse environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Validate checks ports, paths and log settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.RedisClusterAddrs) == 0 {
		errors.ValidateRequired("REDIS_ADDR", c.RedisAddr, vb)
	}
	errors.ValidateRequired("SQLITE_PATH", c.SQLitePath, vb)
	errors.ValidateRange("GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("HTTP_PORT", c.HTTPPort, 1, 65535, vb)
	if c.GRPCPort == c.HTTPPort {
		vb.Field("HTTP_PORT", "must differ from GRPC_PORT")
	}
	if c.SessionTTL <= 0 {
		vb.Field("SESSION_TTL", "must be positive")
	}
	errors.ValidateEnum("LOG_LEVEL", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("LOG_FORMAT", strings.ToLower(c.LogFormat), []string{LogFormatText, LogFormatJSON}, vb)

	return vb.Build()
}

// SlogLevel maps LogLevel to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger in the configured format
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.LogFormat, LogFormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/config"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Parse(map[string]string{})
	s.Require().NoError(err)

	s.Equal("localhost:6379", cfg.RedisAddr)
	s.Empty(cfg.RedisClusterAddrs)
	s.Equal("data/catalog.db", cfg.SQLitePath)
	s.Equal(50051, cfg.GRPCPort)
	s.Equal(8080, cfg.HTTPPort)
	s.Equal("https://www.dnd5eapi.co/api/2014/", cfg.DnD5eAPIURL)
	s.Zero(cfg.DiceSeed)
	s.Equal(15*time.Minute, cfg.SessionTTL)
	s.Empty(cfg.OTELEndpoint)
	s.Equal(slog.LevelInfo, cfg.SlogLevel())
	s.Empty(cfg.ShopAllowedOrigins)
}

func (s *ConfigTestSuite) TestOverrides() {
	cfg, err := config.Parse(map[string]string{
		"REDIS_CLUSTER_ADDRS":  "r1:6379,r2:6379",
		"GRPC_PORT":            "9090",
		"HTTP_PORT":            "9091",
		"DICE_SEED":            "42",
		"SESSION_TTL":          "1h",
		"LOG_LEVEL":            "DEBUG",
		"LOG_FORMAT":           "json",
		"SHOP_ALLOWED_ORIGINS": "https://a.example,https://b.example",
	})
	s.Require().NoError(err)

	s.Equal([]string{"r1:6379", "r2:6379"}, cfg.RedisClusterAddrs)
	s.Equal(9090, cfg.GRPCPort)
	s.Equal(9091, cfg.HTTPPort)
	s.Equal(int64(42), cfg.DiceSeed)
	s.Equal(time.Hour, cfg.SessionTTL)
	s.Equal(slog.LevelDebug, cfg.SlogLevel())
	s.Equal([]string{"https://a.example", "https://b.example"}, cfg.ShopAllowedOrigins)
}

func (s *ConfigTestSuite) TestValidation() {
	testCases := []struct {
		name    string
		environ map[string]string
		field   string
	}{
		{name: "port out of range", environ: map[string]string{"GRPC_PORT": "70000"}, field: "GRPC_PORT"},
		{name: "shared port", environ: map[string]string{"GRPC_PORT": "8080"}, field: "HTTP_PORT"},
		{name: "blank sqlite path", environ: map[string]string{"SQLITE_PATH": " "}, field: "SQLITE_PATH"},
		{name: "zero ttl", environ: map[string]string{"SESSION_TTL": "0s"}, field: "SESSION_TTL"},
		{name: "unknown level", environ: map[string]string{"LOG_LEVEL": "loud"}, field: "LOG_LEVEL"},
		{name: "unknown format", environ: map[string]string{"LOG_FORMAT": "xml"}, field: "LOG_FORMAT"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := config.Parse(tc.environ)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(errors.ValidationFields(err), tc.field)
		})
	}
}

func (s *ConfigTestSuite) TestUnparseableValue() {
	_, err := config.Parse(map[string]string{"HTTP_PORT": "eighty"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestLoadReadsEnvFile() {
	path := filepath.Join(s.T().TempDir(), "test.env")
	s.Require().NoError(os.WriteFile(path, []byte("HTTP_PORT=8181\nLOG_FORMAT=json\n"), 0o600))
	s.T().Setenv("HTTP_PORT", "")
	s.Require().NoError(os.Unsetenv("HTTP_PORT"))
	s.T().Setenv("LOG_FORMAT", "")
	s.Require().NoError(os.Unsetenv("LOG_FORMAT"))

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(8181, cfg.HTTPPort)
	s.Equal(config.LogFormatJSON, cfg.LogFormat)
}

func (s *ConfigTestSuite) TestLoadSkipsMissingFile() {
	_, err := config.Load(filepath.Join(s.T().TempDir(), "missing.env"))
	s.Require().NoError(err)
}

func (s *ConfigTestSuite) TestNewLoggerFormat() {
	cfg, err := config.Parse(map[string]string{"LOG_FORMAT": "json"})
	s.Require().NoError(err)

	var buf bytes.Buffer
	cfg.NewLogger(&buf).Info("hello", "k", "v")
	s.Contains(buf.String(), `"msg":"hello"`)
}

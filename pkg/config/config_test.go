package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata" // named zones in tests

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/aidigest/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_DEEPSEEK_KEY", "sk-123")
		path := writeConfig(t, `
server:
  listen: ":9090"
  admin_key: secret
database:
  dsn: postgres://localhost/aidigest
fetch:
  cron_hour: 6
  cron_minute: 15
  timezone: Asia/Shanghai
  max_items_per_module: 20
  time_window: 72h
  modules: [reddit, youtube]
llm:
  api_key: ${TEST_DEEPSEEK_KEY}
  temperature: 0.5
sources:
  extract_heroes: false
redis:
  addr: localhost:6379
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, "secret", cfg.Server.AdminKey)
		assert.Equal(t, "postgres://localhost/aidigest", cfg.Database.DSN)
		assert.Equal(t, 6, cfg.Fetch.CronHour)
		assert.Equal(t, 15, cfg.Fetch.CronMinute)
		assert.Equal(t, 20, cfg.Fetch.MaxItemsPerModule)
		assert.Equal(t, 72*time.Hour, cfg.Fetch.TimeWindow)
		assert.Equal(t, "sk-123", cfg.LLM.APIKey)
		assert.InEpsilon(t, 0.5, cfg.LLM.Temperature, 0.001)
		assert.False(t, cfg.Sources.ExtractHeroes)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.Equal(t, []domain.Module{domain.ModuleYouTube, domain.ModuleReddit}, cfg.EnabledModules())
		require.NoError(t, cfg.Validate())
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "http://localhost:5173", cfg.Server.FrontendURL)
		assert.Equal(t, "file:aidigest.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, "https://api.deepseek.com", cfg.LLM.Endpoint)
		assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
		assert.InEpsilon(t, 0.7, cfg.LLM.Temperature, 0.001)
		assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, 4, cfg.LLM.Concurrency)
		assert.InEpsilon(t, 2.0, cfg.LLM.RateLimit, 0.001)
		assert.Equal(t, 15*time.Second, cfg.Sources.HTTPTimeout)
		assert.True(t, cfg.Sources.ExtractHeroes)
		assert.Equal(t, 0, cfg.Fetch.CronHour)
		assert.Equal(t, 0, cfg.Fetch.CronMinute)
		assert.Equal(t, "UTC", cfg.Fetch.Timezone)
		assert.Equal(t, time.UTC, cfg.Location())
		assert.Equal(t, 30, cfg.Fetch.MaxItemsPerModule)
		assert.Equal(t, 168*time.Hour, cfg.Fetch.TimeWindow)
		assert.Equal(t, 10, cfg.Fetch.TranslateLimit)
		assert.Equal(t, 1, cfg.Fetch.ModuleConcurrency)
		assert.Equal(t, 7*24*time.Hour, cfg.Redis.TTL)
		assert.Equal(t, domain.Modules, cfg.EnabledModules())

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.admin_key is required")
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, `
invalid yaml content
  with bad indentation
    and no structure
`)
		cfg, err := Load(path)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"temperature", func(c *Config) { c.LLM.Temperature = 2.5 }, "llm.temperature"},
		{"llm concurrency", func(c *Config) { c.LLM.Concurrency = 17 }, "llm.concurrency"},
		{"cron hour", func(c *Config) { c.Fetch.CronHour = 24 }, "fetch.cron_hour"},
		{"cron minute", func(c *Config) { c.Fetch.CronMinute = -1 }, "fetch.cron_minute"},
		{"timezone", func(c *Config) { c.Fetch.Timezone = "Mars/Olympus" }, "fetch.timezone"},
		{"max items", func(c *Config) { c.Fetch.MaxItemsPerModule = -5 }, "fetch.max_items_per_module"},
		{"window", func(c *Config) { c.Fetch.TimeWindow = time.Minute }, "fetch.time_window"},
		{"module concurrency", func(c *Config) { c.Fetch.ModuleConcurrency = -1 }, "fetch.module_concurrency"},
		{"unknown module", func(c *Config) { c.Fetch.Modules = []domain.Module{"tiktok"} }, `unknown module "tiktok"`},
		{"admin key", func(c *Config) { c.Server.AdminKey = "" }, "server.admin_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			cfg.Server.AdminKey = "key"
			tt.modify(cfg)
			err = cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)
	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_items_per_module")
	assert.Contains(t, string(data), "admin_key")
}

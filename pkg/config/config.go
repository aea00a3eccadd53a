// Package config loads the YAML configuration with environment expansion, defaults and validation
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/umputun/aidigest/pkg/domain"
)

//go:generate go run ../../cmd/schema -o ../../config-schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen      string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		AdminKey    string        `yaml:"admin_key" json:"admin_key" jsonschema:"description=Value of X-Admin-Key required by admin endpoints"`
		FrontendURL string        `yaml:"frontend_url" json:"frontend_url" jsonschema:"default=http://localhost:5173,description=Public URL of the frontend"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:aidigest.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string; postgres:// urls select postgres"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Daily fetch pipeline configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for hero selection and translation"`

	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=Source adapters configuration"`

	Redis struct {
		Addr     string        `yaml:"addr" json:"addr" jsonschema:"description=Redis address for the LLM response cache; empty disables caching"`
		Password string        `yaml:"password" json:"password" jsonschema:"description=Redis password"`
		DB       int           `yaml:"db" json:"db" jsonschema:"default=0,description=Redis database"`
		TTL      time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=168h,description=Cached response lifetime"`
	} `yaml:"redis" json:"redis" jsonschema:"description=Redis cache configuration"`
}

// FetchConfig holds the pipeline and schedule settings
type FetchConfig struct {
	CronHour          int             `yaml:"cron_hour" json:"cron_hour" jsonschema:"default=0,minimum=0,maximum=23,description=Hour of the daily fetch"`
	CronMinute        int             `yaml:"cron_minute" json:"cron_minute" jsonschema:"default=0,minimum=0,maximum=59,description=Minute of the daily fetch"`
	Timezone          string          `yaml:"timezone" json:"timezone" jsonschema:"default=UTC,description=Time zone of the daily fetch"`
	MaxItemsPerModule int             `yaml:"max_items_per_module" json:"max_items_per_module" jsonschema:"default=30,minimum=1,description=Maximum items stored per module"`
	TimeWindow        time.Duration   `yaml:"time_window" json:"time_window" jsonschema:"default=168h,description=Maximum item age"`
	TranslateLimit    int             `yaml:"translate_limit" json:"translate_limit" jsonschema:"default=10,description=Non-hero items translated per module"`
	ModuleConcurrency int             `yaml:"module_concurrency" json:"module_concurrency" jsonschema:"default=1,minimum=1,description=Modules processed in parallel"`
	Modules           []domain.Module `yaml:"modules" json:"modules" jsonschema:"description=Enabled modules; empty enables all"`
}

// LLMConfig holds the chat completions client settings
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.deepseek.com,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"default=deepseek-chat,description=Model name"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,minimum=0,maximum=2,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	Concurrency int           `yaml:"concurrency" json:"concurrency" jsonschema:"default=4,minimum=1,maximum=16,description=Maximum in-flight requests"`
	RateLimit   float64       `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=2,description=Requests per second; 0 disables limiting"`
}

// SourcesConfig holds acquisition settings shared by adapters
type SourcesConfig struct {
	HTTPTimeout    time.Duration `yaml:"http_timeout" json:"http_timeout" jsonschema:"default=15s,description=Timeout of a single outbound request"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for outbound requests; browser-like if empty"`
	Concurrency    int           `yaml:"concurrency" json:"concurrency" jsonschema:"default=4,description=Feeds fetched in parallel per adapter"`
	RapidAPIKey    string        `yaml:"rapidapi_key" json:"rapidapi_key" jsonschema:"description=RapidAPI key for the microblog adapter"`
	ExtractHeroes  bool          `yaml:"extract_heroes" json:"extract_heroes" jsonschema:"default=true,description=Extract article text for article and news heroes"`
	ExtractTimeout time.Duration `yaml:"extract_timeout" json:"extract_timeout" jsonschema:"default=20s,description=Article extraction timeout"`
}

// Load reads configuration from a YAML file and applies defaults, empty path means defaults only
func Load(path string) (*Config, error) {
	cfg := Config{}
	cfg.Sources.ExtractHeroes = true

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()
	return &cfg, nil
}

// setDefaults fills zero values
func (c *Config) setDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.FrontendURL == "" {
		c.Server.FrontendURL = "http://localhost:5173"
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:aidigest.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// set defaults for fetch
	if c.Fetch.Timezone == "" {
		c.Fetch.Timezone = "UTC"
	}
	if c.Fetch.MaxItemsPerModule == 0 {
		c.Fetch.MaxItemsPerModule = 30
	}
	if c.Fetch.TimeWindow == 0 {
		c.Fetch.TimeWindow = 168 * time.Hour
	}
	if c.Fetch.TranslateLimit == 0 {
		c.Fetch.TranslateLimit = 10
	}
	if c.Fetch.ModuleConcurrency == 0 {
		c.Fetch.ModuleConcurrency = 1
	}

	// set defaults for LLM
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = "https://api.deepseek.com"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "deepseek-chat"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.LLM.Concurrency == 0 {
		c.LLM.Concurrency = 4
	}
	if c.LLM.RateLimit == 0 {
		c.LLM.RateLimit = 2
	}

	// set defaults for sources
	if c.Sources.HTTPTimeout == 0 {
		c.Sources.HTTPTimeout = 15 * time.Second
	}
	if c.Sources.Concurrency == 0 {
		c.Sources.Concurrency = 4
	}
	if c.Sources.ExtractTimeout == 0 {
		c.Sources.ExtractTimeout = 20 * time.Second
	}

	if c.Redis.TTL == 0 {
		c.Redis.TTL = 7 * 24 * time.Hour
	}
}

// Validate checks configuration for correctness, call it after all overrides are applied
func (c *Config) Validate() error {
	var errs []error

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, errors.New("llm.temperature must be between 0 and 2"))
	}
	if c.LLM.Concurrency < 1 || c.LLM.Concurrency > 16 {
		errs = append(errs, errors.New("llm.concurrency must be between 1 and 16"))
	}
	if c.LLM.RateLimit < 0 {
		errs = append(errs, errors.New("llm.rate_limit must be non-negative"))
	}

	if c.Fetch.CronHour < 0 || c.Fetch.CronHour > 23 {
		errs = append(errs, errors.New("fetch.cron_hour must be between 0 and 23"))
	}
	if c.Fetch.CronMinute < 0 || c.Fetch.CronMinute > 59 {
		errs = append(errs, errors.New("fetch.cron_minute must be between 0 and 59"))
	}
	if _, err := time.LoadLocation(c.Fetch.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("fetch.timezone: %w", err))
	}
	if c.Fetch.MaxItemsPerModule < 1 {
		errs = append(errs, errors.New("fetch.max_items_per_module must be at least 1"))
	}
	if c.Fetch.TimeWindow < time.Hour {
		errs = append(errs, errors.New("fetch.time_window must be at least 1h"))
	}
	if c.Fetch.ModuleConcurrency < 1 {
		errs = append(errs, errors.New("fetch.module_concurrency must be at least 1"))
	}
	for _, m := range c.Fetch.Modules {
		if !m.Valid() {
			errs = append(errs, fmt.Errorf("fetch.modules: unknown module %q", m))
		}
	}

	if c.Server.AdminKey == "" {
		errs = append(errs, errors.New("server.admin_key is required"))
	}
	if c.Server.Timeout < time.Second {
		errs = append(errs, errors.New("server timeout must be at least 1 second"))
	}

	return errors.Join(errs...)
}

// EnabledModules returns configured modules in pipeline order, all modules if none configured
func (c *Config) EnabledModules() []domain.Module {
	if len(c.Fetch.Modules) == 0 {
		return domain.Modules
	}
	enabled := make(map[domain.Module]bool, len(c.Fetch.Modules))
	for _, m := range c.Fetch.Modules {
		enabled[m] = true
	}
	res := make([]domain.Module, 0, len(enabled))
	for _, m := range domain.Modules {
		if enabled[m] {
			res = append(res, m)
		}
	}
	return res
}

// Location returns the time zone of the daily fetch, UTC if unknown
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Fetch.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

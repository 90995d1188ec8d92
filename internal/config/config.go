package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderOllama = "ollama"
)

type ServerConfig struct {
	Port            string   `toml:"port"`
	ShutdownTimeout string   `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// ShutdownWait parses ShutdownTimeout, falling back to five seconds.
func (c ServerConfig) ShutdownWait() time.Duration {
	return parseDuration(c.ShutdownTimeout, 5*time.Second)
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`

	// modelDefaulted is set when Normalize picked Model from Provider.
	modelDefaulted bool
}

// Configured reports whether text generation may call upstream. Ollama runs
// without a key, so a base URL is enough there.
func (c LLMConfig) Configured() bool {
	if strings.ToLower(c.Provider) == ProviderOllama {
		return c.BaseURL != ""
	}
	return c.APIKey != ""
}

type ImageConfig struct {
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

func (c ImageConfig) Configured() bool { return c.APIKey != "" }

// ProviderConfig covers the plain API-key data providers.
type ProviderConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

func (c ProviderConfig) Configured() bool { return c.APIKey != "" }

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type RateLimitConfig struct {
	Requests int    `toml:"requests"`
	Window   string `toml:"window"`
}

func (c RateLimitConfig) WindowDuration() time.Duration {
	return parseDuration(c.Window, time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

type Config struct {
	Server     ServerConfig    `toml:"server"`
	Log        LogConfig       `toml:"log"`
	LLM        LLMConfig       `toml:"llm"`
	Image      ImageConfig     `toml:"image"`
	Trends     ProviderConfig  `toml:"trends"`
	News       ProviderConfig  `toml:"news"`
	YouTube    ProviderConfig  `toml:"youtube"`
	Scheduling ProviderConfig  `toml:"scheduling"`
	Redis      RedisConfig     `toml:"redis"`
	RateLimit  RateLimitConfig `toml:"rate_limit"`
}

// Default returns a configuration with every provider unconfigured.
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Load reads a TOML file. A missing file is not an error: defaults are
// returned so that the environment alone can configure the process.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.Normalize()
	return &cfg, nil
}

// ApplyEnv overrides file values with environment variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Server.Port, "PORT")
	set(&c.Log.Level, "LOG_LEVEL")
	set(&c.Log.Format, "LOG_FORMAT")

	provider := c.LLM.Provider
	set(&c.LLM.Provider, "LLM_PROVIDER")
	if c.LLM.modelDefaulted && !strings.EqualFold(provider, c.LLM.Provider) {
		c.LLM.Model = ""
		c.LLM.modelDefaulted = false
	}
	set(&c.LLM.Model, "LLM_MODEL")
	set(&c.LLM.APIKey, "LLM_API_KEY")
	if c.LLM.APIKey == "" && (c.LLM.Provider == "" || strings.EqualFold(c.LLM.Provider, ProviderGemini)) {
		set(&c.LLM.APIKey, "GEMINI_API_KEY")
	}
	set(&c.LLM.BaseURL, "LLM_BASE_URL")

	set(&c.Image.Model, "IMAGE_MODEL")
	set(&c.Image.APIKey, "IMAGE_API_KEY", "GEMINI_API_KEY")

	set(&c.Trends.APIKey, "SERPAPI_API_KEY")
	set(&c.News.APIKey, "NEWS_API_KEY")
	set(&c.YouTube.APIKey, "YOUTUBE_API_KEY")
	set(&c.Scheduling.APIKey, "LATE_API_KEY")
	set(&c.Scheduling.BaseURL, "LATE_BASE_URL")

	set(&c.Redis.Addr, "REDIS_ADDR")
	set(&c.Redis.Password, "REDIS_PASSWORD")
	if v := getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}

	if v := getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}

	c.Normalize()
}

// Normalize fills defaults for unset fields.
func (c *Config) Normalize() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "5s"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}

	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	if c.LLM.Model == "" {
		c.LLM.modelDefaulted = true
		switch c.LLM.Provider {
		case ProviderOpenAI:
			c.LLM.Model = "gpt-4o-mini"
		case ProviderClaude:
			c.LLM.Model = "claude-3-5-haiku-latest"
		case ProviderOllama:
			c.LLM.Model = "llama3.1"
		default:
			c.LLM.Model = "gemini-2.5-flash"
		}
	}

	if c.Image.Model == "" {
		c.Image.Model = "gemini-2.5-flash-image"
	}
	if c.Image.APIKey == "" && c.LLM.Provider == ProviderGemini {
		c.Image.APIKey = c.LLM.APIKey
	}

	if c.Trends.BaseURL == "" {
		c.Trends.BaseURL = "https://serpapi.com"
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org"
	}
	if c.Scheduling.BaseURL == "" {
		c.Scheduling.BaseURL = "https://getlate.dev/api/v1"
	}
	c.Trends.BaseURL = strings.TrimRight(c.Trends.BaseURL, "/")
	c.News.BaseURL = strings.TrimRight(c.News.BaseURL, "/")
	c.Scheduling.BaseURL = strings.TrimRight(c.Scheduling.BaseURL, "/")

	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 30
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1m"
	}
}

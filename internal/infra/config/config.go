package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	defaultModel       = "swiss-ai/Apertus-70B"
	defaultGeminiModel = "gemini-2.0-flash"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	Weather WeatherConfig `yaml:"weather"`
	Risk    RiskConfig    `yaml:"risk"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// LLMConfig selects and tunes the chat completion backend.
type LLMConfig struct {
	Provider             string        `yaml:"provider"`
	APIKey               string        `yaml:"apiKey"`
	BaseURL              string        `yaml:"baseUrl"`
	Model                string        `yaml:"model"`
	Temperature          float32       `yaml:"temperature"`
	Timeout              time.Duration `yaml:"timeout"`
	ChatMaxTokens        int           `yaml:"chatMaxTokens"`
	ExplanationMaxTokens int           `yaml:"explanationMaxTokens"`
}

// WeatherConfig points at the weather provider.
type WeatherConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// RiskConfig controls the risk lookup.
type RiskConfig struct {
	SimulatedLatency time.Duration  `yaml:"simulatedLatency"`
	Postgres         PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	cfg.applyProviderDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SWISS_AI_PLATFORM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("LLM_CHAT_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.ChatMaxTokens = parsed
		}
	}
	if v := os.Getenv("LLM_EXPLANATION_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.ExplanationMaxTokens = parsed
		}
	}
	if v := os.Getenv("WEATHER_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHER_API_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Timeout = parsed
		}
	}
	if v := os.Getenv("RISK_SIMULATED_LATENCY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Risk.SimulatedLatency = parsed
		}
	}
	if v := os.Getenv("RISK_POSTGRES_DSN"); v != "" {
		cfg.Risk.Postgres.DSN = v
	}
	if v := os.Getenv("RISK_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Risk.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("RISK_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Risk.Postgres.MinConns = int32(parsed)
		}
	}
}

// applyProviderDefaults swaps the default model when Gemini is selected without one.
func (c *Config) applyProviderDefaults() {
	if c.LLM.Provider == ProviderGemini && (c.LLM.Model == "" || c.LLM.Model == defaultModel) {
		c.LLM.Model = defaultGeminiModel
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 90 * time.Second,
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
			},
		},
		LLM: LLMConfig{
			Provider:      ProviderOpenAI,
			BaseURL:       "https://api.swisscom.com/layer/swiss-ai-weeks/apertus-70b/v1",
			Model:         defaultModel,
			Timeout:       60 * time.Second,
			ChatMaxTokens: 300,
		},
		Weather: WeatherConfig{
			BaseURL: "http://api.weatherapi.com/v1",
			Timeout: 10 * time.Second,
		},
		Risk: RiskConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.apiKey cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.ChatMaxTokens < 0 || c.LLM.ExplanationMaxTokens < 0 {
		return errors.New("llm max tokens cannot be negative")
	}
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return errors.New("weather.apiKey cannot be empty")
	}
	if c.Risk.SimulatedLatency < 0 {
		return errors.New("risk.simulatedLatency cannot be negative")
	}
	if c.Risk.Postgres.MinConns < 0 || c.Risk.Postgres.MaxConns < 0 {
		return errors.New("risk.postgres connection limits cannot be negative")
	}
	return nil
}

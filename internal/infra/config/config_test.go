package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_PATH", "HTTP_ADDRESS", "HTTP_ALLOWED_ORIGINS", "LLM_PROVIDER", "LLM_MODEL", "LLM_CHAT_MAX_TOKENS", "RISK_SIMULATED_LATENCY"} {
		t.Setenv(key, "")
	}
	t.Setenv("LLM_API_KEY", "llm-key")
	t.Setenv("WEATHER_KEY", "weather-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 90*time.Second, cfg.HTTP.WriteTimeout)
	require.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	require.Equal(t, "swiss-ai/Apertus-70B", cfg.LLM.Model)
	require.Equal(t, 300, cfg.LLM.ChatMaxTokens)
	require.Equal(t, "http://api.weatherapi.com/v1", cfg.Weather.BaseURL)
	require.Zero(t, cfg.Risk.SimulatedLatency)
}

func TestLoadFileThenEnv(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  allowedOrigins: ["https://safeland.example"]
llm:
  model: "swiss-ai/Apertus-8B"
  chatMaxTokens: 200
risk:
  simulatedLatency: 250ms
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_CHAT_MAX_TOKENS", "150")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "swiss-ai/Apertus-8B", cfg.LLM.Model)
	require.Equal(t, 150, cfg.LLM.ChatMaxTokens)
	require.Equal(t, 250*time.Millisecond, cfg.Risk.SimulatedLatency)
}

func TestLoadSwissKeyFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("SWISS_AI_PLATFORM_API_KEY", "swiss")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "swiss", cfg.LLM.APIKey)
}

func TestLoadGeminiDefaultModel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.LLM.APIKey = "k"
		cfg.Weather.APIKey = "w"
		return cfg
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"address":  func(c *Config) { c.HTTP.Address = "" },
		"provider": func(c *Config) { c.LLM.Provider = "llama" },
		"llm key":  func(c *Config) { c.LLM.APIKey = " " },
		"weather":  func(c *Config) { c.Weather.APIKey = "" },
		"tokens":   func(c *Config) { c.LLM.ChatMaxTokens = -1 },
		"latency":  func(c *Config) { c.Risk.SimulatedLatency = -time.Second },
	}
	for name, mutate := range cases {
		cfg := valid()
		mutate(cfg)
		require.Error(t, cfg.Validate(), name)
	}
}

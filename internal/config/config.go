package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-level configuration read from the environment
// (§6: "Environment"). Injected explicitly into the coordinator rather
// than read from package-level state (§9's "Global state" design note).
type Config struct {
	// Odds vendor
	OddsAPIKey string

	// Rankings site (authenticated scrape, §4.5)
	RankingsUsername string
	RankingsPassword string

	// LLM provider keys — both may be set; the agent runtime picks the
	// provider per model-name prefix (§9: "Provider abstraction").
	OpenAIAPIKey string
	GeminiAPIKey string

	DatabaseURL string
	LogLevel    string
	Debug       bool

	PipelineConfigPath string
	HTTPTimeoutSeconds int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		OddsAPIKey:         envStr("ODDS_API_KEY", ""),
		RankingsUsername:   envStr("RANKINGS_USERNAME", ""),
		RankingsPassword:   envStr("RANKINGS_PASSWORD", ""),
		OpenAIAPIKey:       envStr("OPENAI_API_KEY", ""),
		GeminiAPIKey:       envStr("GEMINI_API_KEY", ""),
		DatabaseURL:        envStr("DATABASE_URL", "data/dailycard.db"),
		LogLevel:           envStr("LOG_LEVEL", "info"),
		Debug:              envStr("DEBUG", "false") == "true",
		PipelineConfigPath: envStr("PIPELINE_CONFIG_PATH", "config.yaml"),
		HTTPTimeoutSeconds: envInt("HTTP_TIMEOUT_SECONDS", 15),
	}
}

// Validate fails fast on missing credentials (§7: "misconfigured API keys
// ... exit 1 at startup").
func (c *Config) Validate() error {
	if c.OddsAPIKey == "" {
		return &missingEnvError{name: "ODDS_API_KEY"}
	}
	if c.OpenAIAPIKey == "" && c.GeminiAPIKey == "" {
		return &missingEnvError{name: "OPENAI_API_KEY or GEMINI_API_KEY"}
	}
	return nil
}

type missingEnvError struct{ name string }

func (e *missingEnvError) Error() string {
	return "missing required environment variable: " + e.name
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Provider names accepted by PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
)

type Config struct {
	ListenAddr     string
	Provider       string
	GeminiAPIKey   string
	OpenAIAPIKey   string
	GroqAPIKey     string
	SearxngURL     string
	RequestTimeout time.Duration
	// AgentsFile optionally overrides the built-in agent definitions.
	AgentsFile string
	// MaxToolRounds bounds each model's tool-calling loop.
	MaxToolRounds int
}

// Load reads configuration from the environment. A .env file in the working
// directory is folded in first when present.
func Load() (Config, error) {
	godotenv.Load()
	cfg := Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8001"),
		Provider:       getEnv("PROVIDER", ProviderGemini),
		GeminiAPIKey:   getEnv("GOOGLE_API_KEY", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
		SearxngURL:     getEnv("SEARXNG_URL", "http://localhost:8080"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 120*time.Second),
		AgentsFile:     getEnv("AGENTS_FILE", ""),
		MaxToolRounds:  getEnvInt("MAX_TOOL_ROUNDS", 6),
	}
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return cfg, fmt.Errorf("GOOGLE_API_KEY is required with provider %s", cfg.Provider)
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return cfg, fmt.Errorf("OPENAI_API_KEY is required with provider %s", cfg.Provider)
		}
	case ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return cfg, fmt.Errorf("GROQ_API_KEY is required with provider %s", cfg.Provider)
		}
	default:
		return cfg, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

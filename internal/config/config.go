// Package config loads server configuration from the environment, with
// .env.local / .env files honored in development.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string `env:"APP_ENV" envDefault:"local"`

	// Credential for the text-completion service. Empty means generation and
	// negotiation are disabled with a remediation error; the screen flow
	// itself still works.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-3-flash-preview"`

	LLMRPS   float64 `env:"LLM_RPS"`
	LLMBurst int     `env:"LLM_BURST"`

	// UseFakeLLM swaps in the deterministic offline client.
	UseFakeLLM bool `env:"FEASTBID_FAKE_LLM"`

	// GuardrailEnforce turns detected input injection into a hard turn
	// rejection. Off by default: observed production behavior is log-only.
	GuardrailEnforce bool `env:"GUARDRAIL_ENFORCE"`
	GuardrailDebug   bool `env:"GUARDRAIL_DEBUG"`

	BidCacheTTL     time.Duration `env:"BID_CACHE_TTL" envDefault:"5m"`
	BidCacheEntries int           `env:"BID_CACHE_ENTRIES" envDefault:"128"`
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	cfg.Port = *port
	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			cfg.Port = envPort
		} else {
			cfg.Port = ":" + envPort
		}
	}

	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	return &cfg, nil
}

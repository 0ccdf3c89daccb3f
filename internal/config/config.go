package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// Language model provider
	OpenAIAPIKey string
	Model        string
	// Model used for suggested-question generation (cheaper, non-streaming)
	PromptModel string
	PromptFile  string
	// Image search provider
	PexelsAPIKey string
	// Scraping
	ScrapeTimeout  time.Duration
	ScrapeCacheTTL time.Duration
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:           getEnvDefault("PORT", "8080"),
		AllowedOrigin:  getEnvDefault("ALLOWED_ORIGIN", "*"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:          getEnvDefault("OPENAI_MODEL", "gpt-4o"),
		PromptModel:    getEnvDefault("OPENAI_PROMPT_MODEL", "gpt-4-turbo"),
		PromptFile:     getEnvDefault("PROMPT_FILE", "./prompts/assistant.yaml"),
		PexelsAPIKey:   os.Getenv("PEXELS_API_KEY"),
		ScrapeTimeout:  getEnvSecondsDefault("SCRAPE_TIMEOUT_SECONDS", 10*time.Second),
		ScrapeCacheTTL: getEnvSecondsDefault("SCRAPE_CACHE_TTL_SECONDS", time.Hour),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; chat endpoints will return errors until provided")
	}
	if cfg.PexelsAPIKey == "" {
		log.Println("warning: PEXELS_API_KEY is not set; image search will return errors until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvSecondsDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("warning: invalid %s value %q, using default", key, v)
	}
	return def
}

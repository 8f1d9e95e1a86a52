package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDbPath           = "calorie_history.db"
	defaultModel            = "Qwen/Qwen2.5-VL-7B-Instruct:hyperbolic"
	defaultBaseURL          = "https://router.huggingface.co/v1"
	defaultInferenceTimeout = 2 * time.Minute
)

type Config struct {
	BotToken         string
	HfToken          string
	HfModel          string
	HfBaseURL        string
	DbPath           string
	InferenceTimeout time.Duration
}

func Load() (c Config, err error) {
	// .env is optional, plain environment variables work the same way
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	c = Config{
		BotToken:         os.Getenv("TELEGRAM_TOKEN"),
		HfToken:          os.Getenv("HF_TOKEN"),
		HfModel:          envOrDefault("HF_MODEL", defaultModel),
		HfBaseURL:        envOrDefault("HF_BASE_URL", defaultBaseURL),
		DbPath:           envOrDefault("DB_PATH", defaultDbPath),
		InferenceTimeout: defaultInferenceTimeout,
	}

	if raw := os.Getenv("INFERENCE_TIMEOUT"); raw != "" {
		d, perr := time.ParseDuration(raw)
		if perr != nil || d <= 0 {
			return c, fmt.Errorf("INFERENCE_TIMEOUT must be a positive duration, got %q", raw)
		}
		c.InferenceTimeout = d
	}

	if c.BotToken == "" {
		return c, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.HfToken == "" {
		return c, fmt.Errorf("HF_TOKEN is required")
	}

	return c, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

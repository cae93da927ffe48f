package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"french_vocab_trainer/generator"
	"french_vocab_trainer/history"
)

const DefaultPath = "config/config.json"

// Config holds server and model settings. Values come from defaults, then the
// JSON file, then the environment.
type Config struct {
	ServerAddr            string   `json:"server_addr,omitempty" env:"VOCAB_SERVER_ADDR"`
	HistoryFile           string   `json:"history_file,omitempty" env:"VOCAB_HISTORY_FILE"`
	Model                 string   `json:"model,omitempty" env:"VOCAB_MODEL"`
	BaseURL               string   `json:"base_url,omitempty" env:"VOCAB_BASE_URL"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds,omitempty" env:"VOCAB_REQUEST_TIMEOUT_SECONDS"`
	LogLevel              string   `json:"log_level,omitempty" env:"VOCAB_LOG_LEVEL"`
	Development           bool     `json:"development,omitempty" env:"VOCAB_DEVELOPMENT"`
	AllowedOrigins        []string `json:"allowed_origins,omitempty" env:"VOCAB_ALLOWED_ORIGINS" envSeparator:","`
}

func Default() Config {
	return Config{
		ServerAddr:            ":5000",
		HistoryFile:           history.DefaultFile,
		Model:                 generator.DefaultModel,
		BaseURL:               generator.DefaultBaseURL,
		RequestTimeoutSeconds: 60,
		LogLevel:              "info",
	}
}

// RequestTimeout is the bound on one generation call; zero means none.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// LoadConfig reads the JSON config at path (a missing file is fine), loads
// .env if present and applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.AllowedOrigins = cleanOrigins(cfg.AllowedOrigins)
	if cfg.RequestTimeoutSeconds < 0 {
		return Config{}, errors.New("request_timeout_seconds must not be negative")
	}
	return cfg, nil
}

// cleanOrigins trims whitespace left by comma splitting and drops empty items.
func cleanOrigins(origins []string) []string {
	var out []string
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

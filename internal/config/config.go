// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package config loads the settings of ontogen from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIKey            = "OPENAI_API_KEY"
	EnvAssistantID       = "ASSISTANT_ID"
	EnvVectorStoreID     = "VECTOR_STORE_ID"
	EnvBaseURL           = "OPENAI_BASE_URL"
	EnvPollInterval      = "ONTOGEN_POLL_INTERVAL"
	EnvPollTimeout       = "ONTOGEN_POLL_TIMEOUT"
	EnvUploadConcurrency = "ONTOGEN_UPLOAD_CONCURRENCY"
	EnvAddr              = "ONTOGEN_ADDR"
	EnvLogLevel          = "ONTOGEN_LOG_LEVEL"
)

type (
	Config struct {
		OpenAI OpenAIConfig
		Poll   PollConfig
		Server ServerConfig

		UploadConcurrency int
		LogLevel          string
	}

	OpenAIConfig struct {
		APIKey        string
		BaseURL       string
		AssistantID   string
		VectorStoreID string
	}

	PollConfig struct {
		Interval time.Duration
		Timeout  time.Duration
	}

	ServerConfig struct {
		Addr string
	}
)

// ConfigError reports a variable that is missing or cannot be parsed.
type ConfigError struct { //nolint:revive
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

func defaults() Config {
	return Config{
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
		},
		Poll: PollConfig{
			Interval: 2 * time.Second,
			Timeout:  10 * time.Minute,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8501",
		},
		UploadConcurrency: 1,
		LogLevel:          "info",
	}
}

// Load reads the .env file of the working directory, if any, and then the environment.
// Variables already set in the environment take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration from the given lookup function.
// It fails on the first required variable that is missing.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := defaults()
	get := func(key string) string {
		value, _ := lookup(key)

		return strings.TrimSpace(value)
	}

	for _, required := range []struct {
		key    string
		target *string
	}{
		{key: EnvAPIKey, target: &cfg.OpenAI.APIKey},
		{key: EnvAssistantID, target: &cfg.OpenAI.AssistantID},
		{key: EnvVectorStoreID, target: &cfg.OpenAI.VectorStoreID},
	} {
		if *required.target = get(required.key); *required.target == "" {
			return Config{}, &ConfigError{Key: required.key, Reason: "required but not set"}
		}
	}

	if v := get(EnvBaseURL); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := get(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	var err error
	if cfg.Poll.Interval, err = duration(get, EnvPollInterval, cfg.Poll.Interval); err != nil {
		return Config{}, err
	}
	if cfg.Poll.Timeout, err = duration(get, EnvPollTimeout, cfg.Poll.Timeout); err != nil {
		return Config{}, err
	}
	if v := get(EnvUploadConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, &ConfigError{Key: EnvUploadConcurrency, Reason: fmt.Sprintf("invalid positive integer %q", v)}
		}
		cfg.UploadConcurrency = n
	}

	return cfg, nil
}

func duration(get func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	value := get(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("invalid duration %q", value)}
	}

	return d, nil
}

// Level maps the configured log level to a slog level; unknown values mean info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

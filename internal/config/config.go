// Package config loads waypoint configuration in layers: built-in defaults,
// an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/alexanderramin/waypoint/internal/llm"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "WAYPOINT_CONFIG"

// GroqKeyEnvVar is read for llm.api_key when no waypoint-specific key is set.
const GroqKeyEnvVar = "GROQ_API_KEY"

// DefaultPaths are searched in order when PathEnvVar is unset.
var DefaultPaths = []string{
	"waypoint.yaml",
	"waypoint.yml",
}

type DBConfig struct {
	Path string `koanf:"path" validate:"required"`
}

type LogConfig struct {
	Calls bool `koanf:"calls"`
}

type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`
	// RateLimit is requests per minute per client IP; 0 disables limiting.
	RateLimit int `koanf:"rate_limit" validate:"gte=0"`
}

// Config is the full application configuration.
type Config struct {
	DB     DBConfig      `koanf:"db"`
	LLM    llm.LLMConfig `koanf:"llm"`
	Log    LogConfig     `koanf:"log"`
	Server ServerConfig  `koanf:"server"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	dbPath := filepath.Join(".waypoint", "waypoint.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".waypoint", "waypoint.db")
	}
	return &Config{
		DB:  DBConfig{Path: dbPath},
		LLM: llm.DefaultConfig(),
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 60,
		},
	}
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load builds the configuration. Precedence is env > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if os.Getenv(envPrefix+"LLM_API_KEY") == "" {
		if key := os.Getenv(GroqKeyEnvVar); key != "" && k.String("llm.api_key") == "" {
			if err := k.Set("llm.api_key", key); err != nil {
				return nil, fmt.Errorf("setting llm.api_key: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

const envPrefix = "WAYPOINT_"

// envKeys maps the suffix after WAYPOINT_ to a config path. Keys contain
// underscores, so the split cannot be derived mechanically.
var envKeys = map[string]string{
	"db_path": "db.path",

	"llm_provider":                "llm.provider",
	"llm_endpoint":                "llm.endpoint",
	"llm_api_key":                 "llm.api_key",
	"llm_model":                   "llm.model",
	"llm_temperature":             "llm.temperature",
	"llm_max_tokens":              "llm.max_tokens",
	"llm_timeout_ms":              "llm.timeout_ms",
	"llm_rate_per_second":         "llm.rate_per_second",
	"llm_rate_burst":              "llm.rate_burst",
	"llm_breaker_enabled":         "llm.breaker.enabled",
	"llm_breaker_max_failures":    "llm.breaker.max_failures",
	"llm_breaker_open_timeout_ms": "llm.breaker.open_timeout_ms",
	"llm_breaker_interval_ms":     "llm.breaker.interval_ms",

	"log_calls": "log.calls",

	"server_addr":       "server.addr",
	"server_rate_limit": "server.rate_limit",
}

// envTransformFunc maps WAYPOINT_LLM_API_KEY to llm.api_key and so on.
// Unknown variables return "" and are skipped.
func envTransformFunc(key string) string {
	if !strings.HasPrefix(key, envPrefix) {
		return ""
	}
	return envKeys[strings.ToLower(strings.TrimPrefix(key, envPrefix))]
}

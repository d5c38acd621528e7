// Package config loads runtime settings from defaults, an optional config
// file, the environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/gemtext/internal/completion"
	"github.com/valpere/gemtext/internal/prompt"
)

// ErrMissingCredential is returned at startup when no API key is configured.
var ErrMissingCredential = errors.New("missing credential")

const EnvPrefix = "GEMTEXT"

type Config struct {
	Completion completion.ServiceConfig `mapstructure:"completion"`
	Server     ServerConfig             `mapstructure:"server"`
	Log        LogConfig                `mapstructure:"log"`
	History    HistoryConfig            `mapstructure:"history"`
	Defaults   prompt.GenerationParams  `mapstructure:"defaults"`
}

type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	Markdown bool   `mapstructure:"markdown"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// credentialEnv lists, per provider, the environment variables checked for
// the API key after completion.api_key.
var credentialEnv = map[string][]string{
	completion.ProviderGemini:     {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	completion.ProviderOpenRouter: {"OPENROUTER_API_KEY"},
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("completion.provider", completion.ProviderGemini)
	v.SetDefault("completion.model", "")
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.timeout", completion.DefaultTimeout)
	v.SetDefault("completion.clean_output", false)
	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.markdown", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "./data/gemtext.db")
	v.SetDefault("defaults.temperature", prompt.DefaultTemperature)
	v.SetDefault("defaults.max_tokens", prompt.DefaultMaxTokens)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// GEMTEXT_API_KEY as a short form of GEMTEXT_COMPLETION_API_KEY
	_ = v.BindEnv("completion.api_key", EnvPrefix+"_COMPLETION_API_KEY", EnvPrefix+"_API_KEY")
}

// Load unmarshals v into a Config, resolves the credential and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Completion.Provider == "" {
		cfg.Completion.Provider = completion.ProviderGemini
	}

	if cfg.Completion.APIKey == "" {
		for _, name := range credentialEnv[cfg.Completion.Provider] {
			if key := os.Getenv(name); key != "" {
				cfg.Completion.APIKey = key
				break
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	names, ok := credentialEnv[c.Completion.Provider]
	if !ok {
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Completion.Provider, completion.ProviderGemini, completion.ProviderOpenRouter)
	}
	if strings.TrimSpace(c.Completion.APIKey) == "" {
		return fmt.Errorf("%w: set %s", ErrMissingCredential, names[0])
	}
	if c.Completion.Timeout < 0 {
		return fmt.Errorf("completion.timeout must not be negative, got %s", c.Completion.Timeout)
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path is required when history is enabled")
	}
	return nil
}

// Timeout returns the completion timeout, falling back to the default.
func (c *Config) Timeout() time.Duration {
	if c.Completion.Timeout > 0 {
		return c.Completion.Timeout
	}
	return completion.DefaultTimeout
}

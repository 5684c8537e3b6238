// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Bot        BotConfig        `mapstructure:"bot"`
	Owner      OwnerConfig      `mapstructure:"owner"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Relay      RelayConfig      `mapstructure:"relay"`
	Server     ServerConfig     `mapstructure:"server"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
}

// OwnerConfig identifies the single operator account. The operator receives
// relayed updates and may issue directed /reply commands.
type OwnerConfig struct {
	ID int64 `mapstructure:"id"`
}

// OpenRouterConfig holds the chat-completion upstream configuration.
// The endpoint speaks the OpenAI chat API; BaseURL defaults to OpenRouter.
type OpenRouterConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// RelayConfig holds operator-relay configuration.
type RelayConfig struct {
	// ChunkSize caps each forwarded message; Telegram rejects texts over 4096
	// characters, so relayed payloads are split, never truncated.
	ChunkSize int `mapstructure:"chunk_size"`
}

// ServerConfig holds the webhook HTTP server configuration.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	WebhookPath string `mapstructure:"webhook_path"`
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the given directory; every value can also be
// provided via environment (BOT_TOKEN, OWNER_ID, OPENROUTER_API_KEY, ...).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase,
	// e.g. BOT_TOKEN, OWNER_ID, OPENROUTER_API_KEY, SERVER_ADDR.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is OK - env vars can provide all config.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Secrets default to empty so
// that AutomaticEnv overrides are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.token", "")
	v.SetDefault("owner.id", 0)

	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "openai/gpt-3.5-turbo")
	v.SetDefault("openrouter.temperature", 0.7)
	v.SetDefault("openrouter.timeout", "30s")

	v.SetDefault("relay.chunk_size", 3900)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.webhook_path", "/api/telegram")
}

// IsOwner checks if a user ID is the configured operator.
func (c *Config) IsOwner(userID int64) bool {
	return c.Owner.ID != 0 && userID == c.Owner.ID
}

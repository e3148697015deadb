// Package config loads the credentials and the JSON settings document that
// drive the bot. Both are read once at startup and treated as immutable.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Kindroid endpoints a persona can be driven through
const (
	EndpointDiscordBot  = "discord-bot"
	EndpointSendMessage = "send-message"
)

// PersonaConfig identifies the hosted Kindroid personality to invoke.
type PersonaConfig struct {
	ID           string `mapstructure:"id" validate:"required"`
	Name         string `mapstructure:"name" validate:"required"`
	Endpoint     string `mapstructure:"endpoint" validate:"required,oneof=discord-bot send-message"`
	EnableFilter bool   `mapstructure:"enable_filter"`
}

// MemoryConfig lists the overlay files composing the static context.
type MemoryConfig struct {
	Files     []string `mapstructure:"files" validate:"required,min=1,dive,required"`
	Separator string   `mapstructure:"separator" validate:"required"`
}

// ReplyConfig holds per-message behavior settings.
type ReplyConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,min=1,max=600"`
	ErrorNotice    string `mapstructure:"error_notice" validate:"required"`
}

// GreeterConfig controls the periodic channel greeting loop.
type GreeterConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	IntervalMinutes int      `mapstructure:"interval_minutes" validate:"required,min=1"`
	ChannelIDs      []string `mapstructure:"channel_ids"`
}

// DatabaseConfig points at the SQLite conversation log.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig selects logger output.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// Config is the typed settings structure loaded from the JSON document.
type Config struct {
	Persona  PersonaConfig  `mapstructure:"persona"`
	Memory   MemoryConfig   `mapstructure:"memory"`
	Reply    ReplyConfig    `mapstructure:"reply"`
	Greeter  GreeterConfig  `mapstructure:"greeter"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// ReplyTimeout returns the per-request Kindroid timeout as a duration.
func (c *Config) ReplyTimeout() time.Duration {
	return time.Duration(c.Reply.TimeoutSeconds) * time.Second
}

// Load reads and validates the JSON configuration document. Any shape
// mismatch, failed validation, or missing overlay file is fatal: the bot
// must not start with partial configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, WrapConfigError("config", fmt.Sprintf("failed to read %s", path), err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, WrapConfigError("config", "failed to parse document", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, WrapConfigError("config", "validation failed", err)
	}

	for _, file := range cfg.Memory.Files {
		if _, err := os.Stat(file); err != nil {
			return nil, WrapConfigError("memory.files", fmt.Sprintf("overlay file %s is not readable", file), err)
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("persona.name", "Cassian")
	v.SetDefault("persona.endpoint", EndpointDiscordBot)
	v.SetDefault("persona.enable_filter", true)
	v.SetDefault("memory.separator", "\n")
	v.SetDefault("reply.timeout_seconds", 90)
	v.SetDefault("reply.error_notice", "Sorry, I lost my train of thought. Give me a moment and ask again.")
	v.SetDefault("greeter.enabled", false)
	v.SetDefault("greeter.interval_minutes", 30)
	v.SetDefault("database.path", "cassian.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

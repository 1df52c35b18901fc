package config

import (
	"strings"

	"github.com/spf13/viper"

	"ollama-assistant/internal/validation"
)

// DefaultSystemPrompt is installed at index 0 of every new conversation.
const DefaultSystemPrompt = "You are a helpful terminal assistant. Provide clear, concise responses focused on programming and technical help."

type Config struct {
	OllamaURL           string `mapstructure:"OLLAMA_URL" validate:"required,url"`
	DefaultModel        string `mapstructure:"DEFAULT_MODEL" validate:"required"`
	InitialSystemPrompt string `mapstructure:"INITIAL_SYSTEM_PROMPT" validate:"required"`
	Streaming           bool   `mapstructure:"STREAMING"`
	LogLevel            string `mapstructure:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR"`
	LogFormat           string `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`
	LogFile             string `mapstructure:"LOG_FILE"`

	source string
}

// Source returns the config file that was read, or "" when only the
// environment and defaults were used.
func (c *Config) Source() string {
	return c.source
}

// LoadConfig reads configuration from an optional .env file and the
// environment, falling back to defaults for anything unset.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("OLLAMA_URL", "http://localhost:11434")
	v.SetDefault("DEFAULT_MODEL", "llama3.2")
	v.SetDefault("INITIAL_SYSTEM_PROMPT", DefaultSystemPrompt)
	v.SetDefault("STREAMING", true)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.OllamaURL = strings.TrimRight(strings.TrimSpace(cfg.OllamaURL), "/")
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := validation.Struct(&cfg); err != nil {
		return nil, err
	}

	cfg.source = v.ConfigFileUsed()
	return &cfg, nil
}

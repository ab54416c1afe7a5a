package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the client's environment-supplied configuration. Every key has a
// local-development default so the binary runs with no configuration at all.
type Config struct {
	APIBaseURL            string `mapstructure:"API_BASE_URL"`
	OllamaURL             string `mapstructure:"OLLAMA_URL"`
	DatabasePath          string `mapstructure:"DATABASE_PATH"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	MaxRetries            int    `mapstructure:"MAX_RETRIES"`
	RetryDelayMs          int    `mapstructure:"RETRY_DELAY_MS"`
	HealthIntervalSeconds int    `mapstructure:"HEALTH_INTERVAL_SECONDS"`
}

// RetryDelay returns the fixed delay between transport retry attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// HealthInterval returns the health poll period.
func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalSeconds) * time.Second
}

// LoadConfig reads configuration from the environment and an optional .env
// file in the working directory.
func LoadConfig() (*Config, error) {
	viper.SetDefault("API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("DATABASE_PATH", "./data/client.db")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("MAX_RETRIES", 3)
	viper.SetDefault("RETRY_DELAY_MS", 1000)
	viper.SetDefault("HEALTH_INTERVAL_SECONDS", 30)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

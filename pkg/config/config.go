package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type TransportConfig struct {
	Type string `mapstructure:"type"` // "stdio" or "sse"
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Transport TransportConfig `mapstructure:"transport"`
	LogLevel  string          `mapstructure:"log_level"`
	LogFormat string          `mapstructure:"log_format"`
	LogBuffer int             `mapstructure:"log_buffer"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Store     StoreConfig     `mapstructure:"store"`

	// Integrations holds the project-level credential sets, keyed by
	// integration reference, e.g. integrations.my-shop.shopifyApiKey.
	Integrations map[string]map[string]string `mapstructure:"integrations"`
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Transport: TransportConfig{
			Type: "stdio",
			Host: "localhost",
			Port: 8080,
		},
		LogLevel:  "info",
		LogFormat: "json",
		LogBuffer: 1000,
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Path: "workflows",
		},
		Integrations: map[string]map[string]string{},
	}
}

func LoadConfig() (*ServerConfig, error) {
	config := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/flowsmith/")
	viper.AddConfigPath("$HOME/.flowsmith/")

	viper.SetEnvPrefix("FLOWSMITH")
	viper.AutomaticEnv()

	viper.SetDefault("transport.type", config.Transport.Type)
	viper.SetDefault("transport.host", config.Transport.Host)
	viper.SetDefault("transport.port", config.Transport.Port)
	viper.SetDefault("log_level", config.LogLevel)
	viper.SetDefault("log_format", config.LogFormat)
	viper.SetDefault("log_buffer", config.LogBuffer)
	viper.SetDefault("http.timeout", config.HTTP.Timeout)
	viper.SetDefault("store.path", config.Store.Path)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func validateConfig(config *ServerConfig) error {
	if config.Transport.Port <= 0 || config.Transport.Port > 65535 {
		return fmt.Errorf("the transport port must be between 1 and 65535")
	}

	if config.HTTP.Timeout <= 0 {
		return fmt.Errorf("the HTTP timeout must be positive")
	}

	if config.Store.Path == "" {
		return fmt.Errorf("the workflow store path cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	validLogFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validLogFormats[config.LogFormat] {
		return fmt.Errorf("invalid log format: %s", config.LogFormat)
	}

	return nil
}

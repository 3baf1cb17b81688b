// Package config loads rankview settings from defaults, an optional YAML
// file, a .env file and the environment.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values.
const (
	DefaultEndpoint       = "http://localhost:5000"
	DefaultRequestTimeout = 2 * time.Minute
	DefaultLogLevel       = "info"
	DefaultServerAddr     = ":5000"
	DefaultBodyLimit      = 16 * 1024 * 1024
)

// Config is the complete rankview configuration.
type Config struct {
	Endpoint string `yaml:"endpoint" validate:"required,endpoint_url"`
	// RequestTimeout bounds one evaluation request. Zero disables it.
	RequestTimeout time.Duration     `yaml:"request_timeout" validate:"gte=0"`
	LogLevel       string            `yaml:"log_level" validate:"required,log_level"`
	LogFile        string            `yaml:"log_file,omitempty"`
	Fields         map[string]string `yaml:"fields,omitempty"`
	Server         ServerConfig      `yaml:"server"`
}

// ServerConfig configures the reference evaluation service.
type ServerConfig struct {
	Addr      string `yaml:"addr" validate:"required,listen_addr"`
	BodyLimit int    `yaml:"body_limit" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint:       DefaultEndpoint,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       DefaultLogLevel,
		Server: ServerConfig{
			Addr:      DefaultServerAddr,
			BodyLimit: DefaultBodyLimit,
		},
	}
}

// DefaultPath is where the config file is looked up when none is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rankview", "config.yaml"), nil
}

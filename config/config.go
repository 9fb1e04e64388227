// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the service settings. Command-line flags override these.
type Config struct {
	StorageType      string  `env:"SERENIFY_STORAGE_TYPE" envDefault:"filesystem"`
	LocalStoragePath string  `env:"SERENIFY_LOCAL_STORAGE_PATH" envDefault:"./data"`
	DataSourceName   string  `env:"SERENIFY_DATA_SOURCE_NAME" envDefault:"serenify.db"`
	ListenAddress    string  `env:"SERENIFY_LISTEN" envDefault:"127.0.0.1:3002"`
	LogLevel         string  `env:"SERENIFY_LOG_LEVEL" envDefault:"info"`
	APISecret        string  `env:"SERENIFY_API_SECRET"`
	ColumnWidth      float64 `env:"SERENIFY_COLUMN_WIDTH" envDefault:"170"`
}

// Load reads optional dotenv files and then parses the environment.
// A missing dotenv file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	return Parse()
}

// Parse loads the configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

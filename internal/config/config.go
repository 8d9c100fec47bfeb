package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DataDir         string `env:"DATA_DIR" envDefault:"data"`
	StoreBackend    string `env:"STORE_BACKEND" envDefault:"file"`
	AdminPassphrase string `env:"ADMIN_PASSPHRASE" envDefault:"festa2026"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	TimeZone        string `env:"TIME_ZONE" envDefault:"America/Sao_Paulo"`
	WhatsAppNotify  bool   `env:"WHATSAPP_NOTIFY" envDefault:"false"`
	WhatsAppDataDir string `env:"WHATSAPP_DATA_DIR"`
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WhatsAppDataDir == "" {
		cfg.WhatsAppDataDir = cfg.DataDir
	}
	return cfg, nil
}

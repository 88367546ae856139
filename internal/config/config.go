package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config конфигурация клиента. Единственное обязательное значение —
// базовый URL API; остальное имеет разумные умолчания.
type Config struct {
	APIURL      string        `envconfig:"API_URL" required:"true"`
	DataDir     string        `envconfig:"DATA_DIR"`
	Language    string        `envconfig:"LANGUAGE" default:"ru"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
}

// Load читает .env (если есть) и окружение с префиксом INFLIGHT.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("inflight", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// CartPath путь файла-снимка корзины
func (c Config) CartPath() string { return filepath.Join(c.DataDir, "cart.json") }

// PrefsPath путь файла пользовательских настроек
func (c Config) PrefsPath() string { return filepath.Join(c.DataDir, "prefs.json") }

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".inflight"
	}
	return filepath.Join(base, "inflight")
}

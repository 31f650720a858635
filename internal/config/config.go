package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int      `envconfig:"PORT" default:"5002"`
	Host           string   `envconfig:"HOST" default:"0.0.0.0"`
	APIKey         string   `envconfig:"ML_API_KEY"`
	ModelDir       string   `envconfig:"MODEL_DIR" default:"models"`
	DefaultVersion string   `envconfig:"DEFAULT_VERSION" default:"v1"`
	CORSOrigins    []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:4000,https://fullstack-starter-rose.vercel.app"`
	GinMode        string   `envconfig:"GIN_MODE" default:"release"`
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("config error: PORT out of range: %d", cfg.Port)
	}
	return cfg, nil
}

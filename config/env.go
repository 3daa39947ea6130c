package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds process settings read from the environment.
type Env struct {
	ListenAddr   string `env:"LISTEN_ADDR" envDefault:":5300"`
	GatewayToken string `env:"GAME_SERVICE_TOKEN,required,notEmpty"`
	DatabaseURL  string `env:"DATABASE_URL"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Plugin configuration lives in ConfigDir unless a bucket is set.
	ConfigDir         string `env:"HUNT_CONFIG_DIR" envDefault:"./data"`
	ConfigBucket      string `env:"R2_BUCKET_NAME"`
	ConfigPrefix      string `env:"R2_CONFIG_PREFIX" envDefault:"pixelhunt/"`
	R2AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`

	DefaultCurrency     string        `env:"DEFAULT_CURRENCY" envDefault:"coins"`
	EconomyPollInterval time.Duration `env:"ECONOMY_POLL_INTERVAL" envDefault:"30s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads an optional .env file, then the environment.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-driven setting for the server
type Config struct {
	// Database
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	// Session tokens
	JWTSecret        string `envconfig:"JWT_SECRET_KEY" required:"true"`
	JWTExpirationHrs int64  `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`

	// HTTP
	ServerPort     string   `envconfig:"SERVER_PORT" default:"5000"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Payment provider
	OmisePublicKey string `envconfig:"OMISE_PUBLIC_KEY"`
	OmiseSecretKey string `envconfig:"OMISE_SECRET_KEY"`
}

// Load processes the environment into a Config
func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

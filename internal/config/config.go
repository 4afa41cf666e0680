package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port           string
	MongoDBURI     string
	AuthJWKSURL    string
	AllowedOrigins string
	Environment    string
	LogLevel       string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnvWithDefault("PORT", "8080"),
		MongoDBURI:     os.Getenv("MONGODB_URI"),
		AuthJWKSURL:    os.Getenv("AUTH_JWKS_URL"),
		AllowedOrigins: getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000"),
		Environment:    getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.AuthJWKSURL == "" && cfg.IsProduction() {
		return nil, fmt.Errorf("AUTH_JWKS_URL is required in production")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

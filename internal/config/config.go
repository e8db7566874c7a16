package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Store   StoreConfig
	Session SessionConfig
	Server  ServerConfig
}

type StoreConfig struct {
	Path string
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TemplateDir  string
	PublicDir    string
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "shop.json"),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "shop_session"),
			TTL:        getEnvDuration("SESSION_TTL", time.Hour),
		},
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			TemplateDir:  getEnv("TEMPLATE_DIR", "templates"),
			PublicDir:    getEnv("PUBLIC_DIR", "public"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		fmt.Printf("Warning: invalid duration for %s, using default\n", key)
	}
	return defaultValue
}

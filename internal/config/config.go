package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	StoreDriver string // "memory" or "sqlite"
	SQLiteDSN   string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("APP_PORT", "8080"),
		Env:         getEnv("APP_ENV", "dev"),
		StoreDriver: getEnv("STORE_DRIVER", "memory"),
		SQLiteDSN:   getEnv("SQLITE_DSN", ":memory:"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

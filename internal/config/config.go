package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Currency    string
	ServiceName string
	LogDev      bool
}

func Load() *Config {
	// A missing .env file is fine; real env vars still apply.
	_ = godotenv.Load()

	logDev, _ := strconv.ParseBool(getEnv("LOG_DEV", "false"))

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Currency:    getEnv("CURRENCY", "BRL"),
		ServiceName: getEnv("OTEL_SERVICE_NAME", ""),
		LogDev:      logDev,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

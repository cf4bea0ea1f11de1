package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir           string
	SeedFile          string
	MaxCartItems      int
	LowStockThreshold int
	LogLevel          slog.Level
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		DataDir:           getEnv("SHOP_DATA_DIR", "data"),
		SeedFile:          getEnv("SHOP_SEED_FILE", "seed.yaml"),
		MaxCartItems:      getEnvInt("SHOP_MAX_CART_ITEMS", 50),
		LowStockThreshold: getEnvInt("SHOP_LOW_STOCK_THRESHOLD", 5),
	}

	level, err := parseLevel(getEnv("SHOP_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.MaxCartItems <= 0 {
		return nil, fmt.Errorf("SHOP_MAX_CART_ITEMS must be positive")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid SHOP_LOG_LEVEL %q", s)
}

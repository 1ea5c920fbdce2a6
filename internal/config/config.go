package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/efreitasn/deliexchange/internal/domain"
)

// Config holds all runtime configuration for the exchange.
type Config struct {
	LogLevel        string
	MinPrice        int64
	MaxPrice        int64
	MinVolume       int64
	MaxVolume       int64
	SelfTradePolicy domain.SelfTradePolicy
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	minPrice, err := getInt64("MIN_PRICE", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_PRICE: %w", err)
	}

	maxPrice, err := getInt64("MAX_PRICE", 20000)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_PRICE: %w", err)
	}

	minVolume, err := getInt64("MIN_VOLUME", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_VOLUME: %w", err)
	}

	maxVolume, err := getInt64("MAX_VOLUME", 20000)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_VOLUME: %w", err)
	}

	if minPrice < 1 || minVolume < 1 {
		return nil, fmt.Errorf("MIN_PRICE and MIN_VOLUME must be positive, got %d and %d", minPrice, minVolume)
	}
	if maxPrice < minPrice {
		return nil, fmt.Errorf("MAX_PRICE (%d) must not be below MIN_PRICE (%d)", maxPrice, minPrice)
	}
	if maxVolume < minVolume {
		return nil, fmt.Errorf("MAX_VOLUME (%d) must not be below MIN_VOLUME (%d)", maxVolume, minVolume)
	}

	policy, err := domain.ParseSelfTradePolicy(getStr("SELF_TRADE_POLICY", string(domain.SelfTradeAllow)))
	if err != nil {
		return nil, fmt.Errorf("invalid SELF_TRADE_POLICY: %w", err)
	}

	return &Config{
		LogLevel:        logLevel,
		MinPrice:        minPrice,
		MaxPrice:        maxPrice,
		MinVolume:       minVolume,
		MaxVolume:       maxVolume,
		SelfTradePolicy: policy,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt64(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

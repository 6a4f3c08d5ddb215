package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// CutoffHour is the local hour after which same-day outbound requests
	// roll to the next day's expected ship date.
	CutoffHour int

	// DefaultSafetyStock is applied when a stock record is created by a
	// first-ever inbound receipt for a (warehouse, product) pair.
	DefaultSafetyStock int64

	// LowStockAlertEmail receives the periodic low-stock scan report.
	LowStockAlertEmail string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:            os.Getenv("APP_NAME"),
			Port:               os.Getenv("PORT"),
			Env:                os.Getenv("APP_ENV"),
			Debug:              os.Getenv("DEBUG") == "true",
			CutoffHour:         envInt("OUTBOUND_CUTOFF_HOUR", 10),
			DefaultSafetyStock: int64(envInt("STOCK_DEFAULT_SAFETY", 0)),
			LowStockAlertEmail: os.Getenv("LOW_STOCK_ALERT_EMAIL"),
		}
	})
}

// Get returns the loaded config, loading it on first use.
func Get() *Config {
	if AppConfig == nil {
		LoadAppConfig()
	}
	return AppConfig
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

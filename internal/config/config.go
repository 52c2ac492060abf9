// Package config loads the application configuration from a .env file
// and environment variables through viper.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the typed application configuration.
type Config struct {
	ListenAddr     string
	DataDir        string
	ObfuscationKey string
	LogLevel       string
	AllowedOrigins []string

	// PINHash is a bcrypt hash of the unlock PIN. Empty disables the
	// API lock entirely.
	PINHash       string
	JWTSecret     string
	SessionExpiry time.Duration

	AppVersion string
}

// Load reads .env (when present) and the environment, then returns the
// typed snapshot with defaults applied.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("OBFUSCATION_KEY", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173"})
	v.SetDefault("PIN_HASH", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_EXPIRY", "12h")
	v.SetDefault("APP_VERSION", "1.0.0")

	// A missing .env is fine; the environment still applies.
	_ = v.ReadInConfig()

	cfg := &Config{
		ListenAddr:     v.GetString("LISTEN_ADDR"),
		DataDir:        v.GetString("DATA_DIR"),
		ObfuscationKey: v.GetString("OBFUSCATION_KEY"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		AllowedOrigins: v.GetStringSlice("ALLOWED_ORIGINS"),
		PINHash:        v.GetString("PIN_HASH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		SessionExpiry:  v.GetDuration("SESSION_EXPIRY"),
		AppVersion:     v.GetString("APP_VERSION"),
	}
	if cfg.SessionExpiry <= 0 {
		cfg.SessionExpiry = 12 * time.Hour
	}
	return cfg, nil
}

package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string // Empty disables the Redis notifier (in-process fallback)
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// StoreTimeout bounds every backing-store call; expiry surfaces as a
	// StoreUnavailable failure rather than a hang.
	StoreTimeout time.Duration

	// WasteKgPerPoint is the estimation factor for the waste-reduced metric.
	WasteKgPerPoint string
	// StreakLookbackDays caps how far back the recycling streak scan goes.
	StreakLookbackDays int
	// EarlyAdopterLimit is how many of the earliest registrations count as
	// early adopters for the Green Pioneer achievement.
	EarlyAdopterLimit int64

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "saricycle-backend")
	viper.SetDefault("STORE_TIMEOUT", "15s")
	viper.SetDefault("WASTE_KG_PER_POINT", "0.1")
	viper.SetDefault("STREAK_LOOKBACK_DAYS", 30)
	viper.SetDefault("EARLY_ADOPTER_LIMIT", 100)
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRY_DURATION ('%s'). Defaulting to 24h.\n", viper.GetString("JWT_EXPIRY_DURATION"))
		jwtExpiry = 24 * time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry

	storeTimeout, err := time.ParseDuration(viper.GetString("STORE_TIMEOUT"))
	if err != nil || storeTimeout <= 0 {
		log.Printf("Warning: Invalid STORE_TIMEOUT ('%s'). Defaulting to 15s.\n", viper.GetString("STORE_TIMEOUT"))
		storeTimeout = 15 * time.Second
	}
	cfg.StoreTimeout = storeTimeout

	cfg.WasteKgPerPoint = viper.GetString("WASTE_KG_PER_POINT")
	cfg.StreakLookbackDays = viper.GetInt("STREAK_LOOKBACK_DAYS")
	cfg.EarlyAdopterLimit = viper.GetInt64("EARLY_ADOPTER_LIMIT")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

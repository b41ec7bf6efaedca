package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTExpiry = 12 * time.Hour
	defaultJWTIssuer = "blood-desk"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	LogLevel          string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// LoginRateLimit is a ulule/limiter formatted rate, e.g. "5-M".
	LoginRateLimit     string
	CORSAllowedOrigins []string

	LowStockThreshold  int
	AnalyticsScanLimit int

	SeedAdmin     bool
	AdminUsername string
	AdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)
	v.SetDefault("ANALYTICS_SCAN_LIMIT", 300)
	v.SetDefault("SEED_ADMIN", true)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		SeedAdmin:     v.GetBool("SEED_ADMIN"),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = defaultJWTExpiry
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")
	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = "5-M"
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.LowStockThreshold = v.GetInt("LOW_STOCK_THRESHOLD")
	if cfg.LowStockThreshold < 0 {
		log.Printf("Warning: Invalid LOW_STOCK_THRESHOLD (%d). Defaulting to 5.\n", cfg.LowStockThreshold)
		cfg.LowStockThreshold = 5
	}

	cfg.AnalyticsScanLimit = v.GetInt("ANALYTICS_SCAN_LIMIT")
	if cfg.AnalyticsScanLimit <= 0 {
		log.Printf("Warning: Invalid ANALYTICS_SCAN_LIMIT (%d). Defaulting to 300.\n", cfg.AnalyticsScanLimit)
		cfg.AnalyticsScanLimit = 300
	}

	if cfg.IsProduction && cfg.SeedAdmin && cfg.AdminPassword == "admin123" {
		log.Println("Warning: SEED_ADMIN is enabled with the default admin password in production.")
	}

	return cfg, nil
}

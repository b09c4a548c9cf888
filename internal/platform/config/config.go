package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret     = "your-secret-key-here"
	defaultRefreshSecret = "your-refresh-secret"
)

// Config holds application configuration.
type Config struct {
	Host         string
	Port         string
	IsProduction bool
	LogLevel     string

	// DataDir holds users.json, todos.json and refresh-tokens.json.
	DataDir string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration

	BcryptCost int

	// LoginRateLimit uses the ulule/limiter formatted syntax ("10-M"). Empty disables it.
	LoginRateLimit     string
	CORSAllowedOrigins []string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "3001")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "15m")
	v.SetDefault("JWT_ISSUER", "todo-api")
	v.SetDefault("JWT_REFRESH_SECRET", defaultRefreshSecret)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("POSTHOG_API_KEY", "")
	// An explicitly empty LOGIN_RATE_LIMIT turns the limiter off.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := &Config{
		Host:               v.GetString("HOST"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		DataDir:            v.GetString("DATA_DIR"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		RefreshTokenSecret: v.GetString("JWT_REFRESH_SECRET"),
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		LoginRateLimit:     strings.TrimSpace(v.GetString("LOGIN_RATE_LIMIT")),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "3001"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 10
	}

	// Load JWT Expiry Duration (e.g., "15m", "1h")
	cfg.JWTExpiryDuration = parseDuration(v.GetString("JWT_EXPIRY_DURATION"), 15*time.Minute, "JWT_EXPIRY_DURATION")
	cfg.RefreshTokenExpiryDuration = parseDuration(v.GetString("REFRESH_TOKEN_EXPIRY_DURATION"), 7*24*time.Hour, "REFRESH_TOKEN_EXPIRY_DURATION")

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}
	if cfg.RefreshTokenSecret == "" {
		cfg.RefreshTokenSecret = defaultRefreshSecret
	}
	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RefreshTokenSecret == defaultRefreshSecret {
		log.Println("Warning: JWT_REFRESH_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.JWTSecret == c.RefreshTokenSecret {
		return errors.New("config: JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.IsProduction && (c.JWTSecret == defaultJWTSecret || c.RefreshTokenSecret == defaultRefreshSecret) {
		return errors.New("config: default token secrets are not allowed when IS_PRODUCTION is set")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func parseDuration(raw string, fallback time.Duration, key string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

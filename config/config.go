package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	AI         AIConfig
	Match      MatchConfig
	Cloudinary CloudinaryConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RateLimit is requests allowed per caller per RateLimitWindow.
	RateLimit       int
	RateLimitWindow time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type AIConfig struct {
	GeminiAPIKey string
	Model        string
	// HistoryWindow is how many recent messages are replayed to the model.
	HistoryWindow int
}

// MatchConfig holds discovery policy. Defaults must stay at 10 / 50 / 2 for
// behavioral compatibility with existing clients.
type MatchConfig struct {
	DefaultLimit     int
	MinCompatibility int
	Overfetch        int
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Port:            envOr("PORT", "8088"),
			Env:             envOr("APP_ENV", "development"),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second, // AI replies can take a while
			RateLimit:       envIntOr("RATE_LIMIT_REQUESTS", 100),
			RateLimitWindow: time.Duration(envIntOr("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             envOr("DATABASE_DSN", "charmly:charmly@tcp(localhost:3306)/charmly?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  envOr("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: envOr("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "charmly",
		},
		OAuth: OAuthConfig{
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		AI: AIConfig{
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:         envOr("GEMINI_MODEL", "gemini-2.5-flash"),
			HistoryWindow: 20,
		},
		Match: MatchConfig{
			DefaultLimit:     envIntOr("MATCH_DEFAULT_LIMIT", 10),
			MinCompatibility: envIntOr("MATCH_MIN_COMPATIBILITY", 50),
			Overfetch:        envIntOr("MATCH_OVERFETCH", 2),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

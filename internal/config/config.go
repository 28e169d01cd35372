package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	FallbackDegrade = "degrade"
	FallbackFail    = "fail"
)

// app config, read once at startup
type Config struct {
	Env  string
	Port string

	Database DatabaseConfig

	JWTSecret string
	JWTTTL    time.Duration

	Provider      string
	OracleTimeout time.Duration

	Video VideoConfig

	RedisAddr      string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns DATABASE_URL when set, otherwise a key/value postgres DSN.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type VideoConfig struct {
	APIKey         string
	Secret         string
	Endpoint       string
	Timeout        time.Duration
	TokenTTL       time.Duration
	FallbackPolicy string
}

// LoadDotenv reads .env files if present. A missing file is not an error.
func LoadDotenv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	env := getEnvOrDefault("APP_ENV", EnvProduction)
	cfg := &Config{
		Env:  env,
		Port: getEnvOrDefault("PORT", "8080"),
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			User:     getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Name:     getEnvOrDefault("POSTGRES_DB", "interviews"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        getEnvDuration("JWT_TTL", 24*time.Hour),
		Provider:      getEnvOrDefault("AI_PROVIDER", "gemini"),
		OracleTimeout: getEnvDuration("ORACLE_TIMEOUT", 60*time.Second),
		Video: VideoConfig{
			APIKey:         os.Getenv("VIDEOSDK_API_KEY"),
			Secret:         os.Getenv("VIDEOSDK_SECRET"),
			Endpoint:       strings.TrimRight(getEnvOrDefault("VIDEOSDK_API_ENDPOINT", "https://api.videosdk.live"), "/"),
			Timeout:        getEnvDuration("ROOM_TIMEOUT", 10*time.Second),
			TokenTTL:       getEnvDuration("ROOM_TOKEN_TTL", 2*time.Hour),
			FallbackPolicy: strings.ToLower(getEnvOrDefault("ROOM_FALLBACK_POLICY", FallbackDegrade)),
		},
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		AllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
	}
	if cfg.JWTSecret == "" && env == EnvDevelopment {
		cfg.JWTSecret = "dev-secret"
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if config.OracleTimeout <= 0 || config.Video.Timeout <= 0 {
		return errors.New("ORACLE_TIMEOUT and ROOM_TIMEOUT must be positive")
	}
	switch config.Video.FallbackPolicy {
	case FallbackDegrade, FallbackFail:
	default:
		return errors.New("ROOM_FALLBACK_POLICY must be degrade or fail")
	}
	// Gemini validation is handled by gemini.NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs := getEnvInt(key, -1); secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

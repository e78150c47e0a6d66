package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth configuration
	JWTSecret         string
	JWTExpiry         time.Duration
	AdminUsername     string
	AdminPasswordHash string

	// Paging defaults for recipe listings
	PageSize         int
	MaxPageSize      int
	DefaultSort      string
	DefaultDirection string

	// Write rate limiting; RateLimit <= 0 disables it
	RateLimit       int
	RateLimitWindow time.Duration

	LogLevel string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	switch env {
	case Development, Test:
		if err := loadDotEnv(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := loadFromEnv()

	// Load sensitive values based on environment
	switch env {
	case CI:
		loadCISecrets(cfg)
	case Development, Test:
		loadDevSecrets(cfg)
	case Production:
		loadProdSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads ENV_FILE (default .env) when it exists. Variables that
// are already set win over the file.
func loadDotEnv() error {
	path := firstNonEmpty(os.Getenv("ENV_FILE"), ".env")
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadFromEnv reads every non-secret setting from the environment
func loadFromEnv() *Config {
	return &Config{
		ServerPort:  firstNonEmpty(os.Getenv("SERVER_PORT"), "8080"),
		ServerHost:  firstNonEmpty(os.Getenv("SERVER_HOST"), "0.0.0.0"),
		CORSOrigins: splitList(firstNonEmpty(os.Getenv("CORS_ORIGINS"), "*")),

		DBDriver:   strings.ToLower(firstNonEmpty(os.Getenv("DB_DRIVER"), "postgres")),
		DBHost:     firstNonEmpty(os.Getenv("DB_HOST"), "localhost"),
		DBPort:     firstNonEmpty(os.Getenv("DB_PORT"), "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     firstNonEmpty(os.Getenv("DB_NAME"), "recipes"),
		DBSSLMode:  firstNonEmpty(os.Getenv("DB_SSL_MODE"), "disable"),
		SQLitePath: firstNonEmpty(os.Getenv("SQLITE_PATH"), "recipes.db"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     firstNonEmpty(os.Getenv("REDIS_PORT"), "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       parseIntWithDefault(os.Getenv("REDIS_DB"), 0),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiry:         parseDurationWithDefault(os.Getenv("JWT_EXPIRY"), 24*time.Hour),
		AdminUsername:     firstNonEmpty(os.Getenv("ADMIN_USERNAME"), "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		PageSize:         parseIntWithDefault(os.Getenv("PAGE_SIZE"), 10),
		MaxPageSize:      parseIntWithDefault(os.Getenv("MAX_PAGE_SIZE"), 100),
		DefaultSort:      firstNonEmpty(os.Getenv("DEFAULT_SORT"), "id"),
		DefaultDirection: strings.ToUpper(firstNonEmpty(os.Getenv("DEFAULT_DIRECTION"), "DESC")),

		RateLimit:       parseIntWithDefault(os.Getenv("RATE_LIMIT"), 60),
		RateLimitWindow: parseDurationWithDefault(os.Getenv("RATE_LIMIT_WINDOW"), time.Minute),

		LogLevel: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}
}

// loadCISecrets takes secrets from GitHub Actions environment variables
func loadCISecrets(cfg *Config) {
	cfg.DBPassword = firstNonEmpty(os.Getenv("TEST_DB_PASSWORD"), cfg.DBPassword)
	cfg.JWTSecret = firstNonEmpty(os.Getenv("TEST_JWT_SECRET"), cfg.JWTSecret)
	cfg.RedisPassword = firstNonEmpty(os.Getenv("TEST_REDIS_PASSWORD"), cfg.RedisPassword)
	cfg.RedisURL = firstNonEmpty(os.Getenv("TEST_REDIS_URL"), cfg.RedisURL)
}

// loadDevSecrets prefers Docker secrets when present and falls back to the
// environment so a plain .env file is enough locally
func loadDevSecrets(cfg *Config) {
	cfg.DBUser = firstNonEmpty(readSecret("db_user"), cfg.DBUser)
	cfg.DBPassword = firstNonEmpty(readSecret("db_password"), cfg.DBPassword)
	cfg.JWTSecret = firstNonEmpty(readSecret("jwt_secret"), cfg.JWTSecret)
	cfg.RedisPassword = firstNonEmpty(readSecret("redis_password"), cfg.RedisPassword)
	cfg.AdminPasswordHash = firstNonEmpty(readSecret("admin_password_hash"), cfg.AdminPasswordHash)
}

// loadProdSecrets loads sensitive values using ONLY Docker secrets
func loadProdSecrets(cfg *Config) {
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.AdminPasswordHash = readSecret("admin_password_hash")
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := firstNonEmpty(os.Getenv("SECRETS_DIR"), "/run/secrets")
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Addr is the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return n
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

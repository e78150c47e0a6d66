package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

var (
	drivers    = []string{"postgres", "sqlite", "memory"}
	directions = []string{"ASC", "DESC"}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)
	require("JWT_SECRET", cfg.JWTSecret)

	switch cfg.DBDriver {
	case "postgres":
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_NAME", cfg.DBName)
		require("DB_USER", cfg.DBUser)
	case "sqlite":
		require("SQLITE_PATH", cfg.SQLitePath)
	case "memory":
		if env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "memory driver is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "DB_DRIVER",
			Message: fmt.Sprintf("must be one of %s", strings.Join(drivers, ", ")),
		})
	}

	if env == Production {
		require("ADMIN_USERNAME", cfg.AdminUsername)
		require("admin_password_hash", cfg.AdminPasswordHash)
		if cfg.DBDriver == "postgres" {
			require("db_password", cfg.DBPassword)
		}
	}

	if cfg.PageSize <= 0 {
		errs = append(errs, ValidationError{Field: "PAGE_SIZE", Message: "must be positive"})
	}
	if cfg.MaxPageSize < cfg.PageSize {
		errs = append(errs, ValidationError{Field: "MAX_PAGE_SIZE", Message: "must not be smaller than PAGE_SIZE"})
	}
	if !contains(directions, strings.ToUpper(cfg.DefaultDirection)) {
		errs = append(errs, ValidationError{Field: "DEFAULT_DIRECTION", Message: "must be ASC or DESC"})
	}
	if cfg.RateLimit > 0 && cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive when rate limiting is enabled"})
	}
	if cfg.JWTExpiry <= 0 {
		errs = append(errs, ValidationError{Field: "JWT_EXPIRY", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

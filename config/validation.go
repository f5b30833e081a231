package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every field the process cannot run
// without is present. AI credentials are checked separately during
// load so the file-based fallback can apply first.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  cfg.JWTSecret,
	}

	for field, value := range required {
		if value == "" {
			return ValidationError{Field: field, Message: "required value is missing"}
		}
	}

	if cfg.MaxUploadBytes <= 0 {
		return ValidationError{Field: "MaxUploadBytes", Message: "must be positive"}
	}
	if cfg.AITimeout <= 0 {
		return ValidationError{Field: "AI_TIMEOUT", Message: "must be positive"}
	}

	return nil
}

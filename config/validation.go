package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable.
// An absent API key is deliberately not checked here.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errors = append(errors, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)}.Error())
	}

	switch cfg.LLMProvider {
	case ProviderGemini:
		if cfg.GeminiModel == "" {
			errors = append(errors, ValidationError{"GEMINI_MODEL", "must not be empty"}.Error())
		}
		if cfg.GeminiAPIURL == "" {
			errors = append(errors, ValidationError{"GEMINI_API_URL", "must not be empty"}.Error())
		}
	case ProviderOpenAI:
		if cfg.OpenAIModel == "" {
			errors = append(errors, ValidationError{"OPENAI_MODEL", "must not be empty"}.Error())
		}
		if cfg.OpenAIAPIURL == "" {
			errors = append(errors, ValidationError{"OPENAI_API_URL", "must not be empty"}.Error())
		}
	default:
		errors = append(errors, ValidationError{"LLM_PROVIDER", fmt.Sprintf("unknown provider %q", cfg.LLMProvider)}.Error())
	}

	if cfg.LLMTimeout <= 0 {
		errors = append(errors, ValidationError{"LLM_TIMEOUT", "must be positive"}.Error())
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		errors = append(errors, ValidationError{"LOG_FORMAT", fmt.Sprintf("unknown format %q", cfg.LogFormat)}.Error())
	}

	// An empty origin list disables CORS altogether.
	if len(cfg.AllowedOrigins) > 0 {
		if err := (cors.Config{AllowOrigins: cfg.AllowedOrigins}).Validate(); err != nil {
			errors = append(errors, ValidationError{"CORS_ALLOWED_ORIGINS", err.Error()}.Error())
		}
	}

	switch cfg.JournalDriver {
	case JournalNone:
	case JournalSQLite, JournalPostgres, JournalRedis:
		if cfg.JournalDSN == "" {
			errors = append(errors, ValidationError{"JOURNAL_DSN", "required when JOURNAL_DRIVER is set"}.Error())
		}
		// Only the Redis list is trimmed to a maximum length.
		if cfg.JournalDriver == JournalRedis && cfg.JournalMaxEntries <= 0 {
			errors = append(errors, ValidationError{"JOURNAL_MAX_ENTRIES", "must be positive"}.Error())
		}
	default:
		errors = append(errors, ValidationError{"JOURNAL_DRIVER", fmt.Sprintf("unknown driver %q", cfg.JournalDriver)}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid configuration:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

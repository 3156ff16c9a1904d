package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Text generation configuration
	LLMProvider  string
	LLMTimeout   time.Duration
	GeminiAPIKey string
	GeminiModel  string
	GeminiAPIURL string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIAPIURL string

	// Form handling
	StrictOptions bool

	// Logging
	LogLevel  string
	LogFormat string

	// Observability
	MetricsEnabled bool

	// Generation journal configuration
	JournalDriver     string
	JournalDSN        string
	JournalMaxEntries int
}

// Supported text generation providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Supported journal drivers
const (
	JournalNone     = ""
	JournalSQLite   = "sqlite"
	JournalPostgres = "postgres"
	JournalRedis    = "redis"
)

// LoadDotEnv loads variables from a .env file in the working directory, if any.
// Variables already present in the environment are left untouched.
func LoadDotEnv() error {
	return godotenv.Load()
}

// LoadConfig creates a new Config instance from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Environment:       GetEnvironment(),
		ServerHost:        v.GetString("SERVER_HOST"),
		ServerPort:        v.GetString("SERVER_PORT"),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
		AllowedOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LLMProvider:       strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
		LLMTimeout:        v.GetDuration("LLM_TIMEOUT"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		GeminiAPIURL:      strings.TrimRight(v.GetString("GEMINI_API_URL"), "/"),
		OpenAIModel:       v.GetString("OPENAI_MODEL"),
		OpenAIAPIURL:      v.GetString("OPENAI_API_URL"),
		StrictOptions:     v.GetBool("STRICT_OPTIONS"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		MetricsEnabled:    v.GetBool("METRICS_ENABLED"),
		JournalDriver:     strings.ToLower(strings.TrimSpace(v.GetString("JOURNAL_DRIVER"))),
		JournalDSN:        v.GetString("JOURNAL_DSN"),
		JournalMaxEntries: v.GetInt("JOURNAL_MAX_ENTRIES"),
	}

	var err error
	if cfg.GeminiAPIKey, err = readKey(v, "GEMINI_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.OpenAIAPIKey, err = readKey(v, "OPENAI_API_KEY"); err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// APIKey returns the key for the selected provider
func (c *Config) APIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// JournalEnabled reports whether generations are recorded
func (c *Config) JournalEnabled() bool {
	return c.JournalDriver != JournalNone
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "127.0.0.1")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SHUTDOWN_TIMEOUT", 5*time.Second)
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("LLM_TIMEOUT", 60*time.Second)
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("OPENAI_MODEL", "deepseek-chat")
	v.SetDefault("OPENAI_API_URL", "https://api.deepseek.com/v1/chat/completions")
	v.SetDefault("STRICT_OPTIONS", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("JOURNAL_DRIVER", JournalNone)
	v.SetDefault("JOURNAL_MAX_ENTRIES", 500)
}

// readKey reads an API key from NAME, falling back to the file named by NAME_FILE.
// A missing key is not an error: only generation requests are affected by it.
func readKey(v *viper.Viper, name string) (string, error) {
	if key := strings.TrimSpace(v.GetString(name)); key != "" {
		return key, nil
	}

	keyFile := v.GetString(name + "_FILE")
	if keyFile == "" {
		return "", nil
	}

	keyBytes, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s_FILE: %w", name, err)
	}

	return strings.TrimSpace(string(keyBytes)), nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

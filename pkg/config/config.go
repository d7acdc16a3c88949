package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// SupportedLanguages is the fixed set of transcription language codes.
var SupportedLanguages = []string{"hi", "en", "es", "fr", "de"}

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Deepgram DeepgramConfig
	Storage  StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// GeminiConfig holds generative-model API configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// DeepgramConfig holds transcription API configuration
type DeepgramConfig struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// StorageConfig holds object storage configuration for exported artifacts
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", "120s"),
		},
		Deepgram: DeepgramConfig{
			APIKey:   getEnv("DEEPGRAM_API_KEY", ""),
			BaseURL:  getEnv("DEEPGRAM_API_URL", "https://api.deepgram.com"),
			Language: getEnv("DEEPGRAM_LANGUAGE", "hi"),
			Timeout:  getEnvAsDuration("DEEPGRAM_TIMEOUT", "120s"),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "prompt-evolution"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration. API keys are deliberately not
// required at startup; their absence blocks only the dependent actions.
func (c *Config) Validate() error {
	if !IsLanguageSupported(c.Deepgram.Language) {
		return fmt.Errorf("DEEPGRAM_LANGUAGE must be one of %v, got %q", SupportedLanguages, c.Deepgram.Language)
	}
	return nil
}

// IsLanguageSupported reports whether code is in the fixed language set.
func IsLanguageSupported(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// GetServerAddr returns the host:port the server listens on
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

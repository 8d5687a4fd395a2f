package config

import (
	"os"
	"path/filepath"

	"fjacquet/statement-analyzer/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. It returns the file that was loaded.
func LoadEnv(logger logging.Logger) string {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			logger.Debug("No .env file found, using environment variables")
			return ""
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.WithError(err).Warn("Error loading .env file")
		return ""
	}
	logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
	return envFile
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// GetGeminiAPIKey returns the Gemini API key from environment variables
func GetGeminiAPIKey() string {
	return GetEnv("GEMINI_API_KEY", "")
}

// ConfigureLogger builds the application logger from the log section.
func ConfigureLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}

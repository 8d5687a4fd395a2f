package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/statement-analyzer/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, ',', config.CSVOptions().Delimiter)
	assert.Equal(t, 4, config.JSONOptions().Indent)
	assert.Equal(t, 30*time.Second, config.AITimeout())
	assert.Equal(t, 10*1024*1024, config.MaxUploadBytes())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	testEnvVars := map[string]string{
		"STMT_LOG_LEVEL":                "debug",
		"STMT_LOG_FORMAT":               "json",
		"STMT_CSV_DELIMITER":            ";",
		"STMT_CSV_ENCODING":             "windows-1252",
		"STMT_JSON_ASCII":               "true",
		"STMT_ANALYSIS_TOP_N":           "5",
		"STMT_ANALYSIS_CURRENCY_SYMBOL": "$",
		"STMT_AI_ENABLED":               "true",
		"STMT_AI_MODEL":                 "gemini-1.5-pro",
		"STMT_SERVER_ADDRESS":           "127.0.0.1:9000",
		"GEMINI_API_KEY":                "test-api-key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "windows-1252", config.CSVOptions().Encoding)
	assert.True(t, config.JSON.ASCII)
	assert.Equal(t, 5, config.Analysis.TopN)
	assert.Equal(t, "$", config.Analysis.CurrencySymbol)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, "127.0.0.1:9000", config.Server.Address)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

const fileConfig = `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
  profile: "sbi"
json:
  indent: 2
analysis:
  top_n: 7
`

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(fileConfig), 0644))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "sbi", config.CSV.Profile)
	assert.Equal(t, 2, config.JSON.Indent)
	assert.Equal(t, 7, config.Analysis.TopN)
	assert.Equal(t, "₹", config.Analysis.CurrencySymbol)
}

func TestInitializeConfigFromFile(t *testing.T) {
	clearTestEnvVars(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fileConfig), 0644))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, config.Analysis.TopN)

	_, err = InitializeConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(fileConfig), 0644))
	chdir(t, tempDir)

	t.Setenv("STMT_LOG_LEVEL", "error")
	t.Setenv("STMT_ANALYSIS_TOP_N", "25")
	t.Setenv("GEMINI_API_KEY", "env-api-key")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)       // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter)       // config file value
	assert.Equal(t, 25, config.Analysis.TopN)        // env var wins
	assert.Equal(t, "env-api-key", config.AI.APIKey) // env var (API key)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid CSV delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "abc" },
			expectError:  "CSV delimiter must be a single character",
		},
		{
			name:         "unknown encoding",
			modifyConfig: func(c *Config) { c.CSV.Encoding = "ebcdic" },
			expectError:  "csv.encoding",
		},
		{
			name:         "negative indent",
			modifyConfig: func(c *Config) { c.JSON.Indent = -1 },
			expectError:  "json.indent must be between 0 and 16",
		},
		{
			name:         "zero top n",
			modifyConfig: func(c *Config) { c.Analysis.TopN = 0 },
			expectError:  "analysis.top_n must be at least 1",
		},
		{
			name: "AI enabled without API key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = ""
			},
			expectError: "GEMINI_API_KEY required when AI is enabled",
		},
		{
			name: "invalid timeout seconds",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.TimeoutSeconds = 0
			},
			expectError: "ai.timeout_seconds must be between 1 and 300",
		},
		{
			name:         "zero upload limit",
			modifyConfig: func(c *Config) { c.Server.MaxUploadMB = 0 },
			expectError:  "server.max_upload_mb must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	config := DefaultConfig()
	config.Log.Level = "debug"
	config.Log.Format = "json"

	logger := ConfigureLogger(config)
	_, ok := logger.(*logging.LogrusAdapter)
	assert.True(t, ok)
}

func TestLoadEnv(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	chdir(t, dir)

	assert.Equal(t, "", LoadEnv(logging.NewMockLogger()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("GEMINI_API_KEY") })

	assert.Equal(t, ".env", LoadEnv(nil))
	assert.Equal(t, "from-dotenv", GetGeminiAPIKey())
	assert.Equal(t, "fallback", GetEnv("STMT_UNSET_FOR_TEST", "fallback"))
}

// clearTestEnvVars unsets every variable these tests read and restores them
// afterwards.
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"STMT_LOG_LEVEL",
		"STMT_LOG_FORMAT",
		"STMT_CSV_DELIMITER",
		"STMT_CSV_ENCODING",
		"STMT_CSV_PROFILE",
		"STMT_JSON_INDENT",
		"STMT_JSON_ASCII",
		"STMT_ANALYSIS_TOP_N",
		"STMT_ANALYSIS_CURRENCY_SYMBOL",
		"STMT_AI_ENABLED",
		"STMT_AI_MODEL",
		"STMT_AI_TIMEOUT_SECONDS",
		"STMT_SERVER_ADDRESS",
		"STMT_SERVER_MAX_UPLOAD_MB",
		"STMT_PROFILES_FILE",
		"GEMINI_API_KEY",
	}
	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}

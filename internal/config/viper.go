// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/statement-analyzer/internal/common"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STMT_LOG_LEVEL.
const EnvPrefix = "STMT"

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig describes the dialect of statement exports.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	Encoding  string `mapstructure:"encoding" yaml:"encoding"`
	Profile   string `mapstructure:"profile" yaml:"profile"`
}

// JSONConfig controls the converter output.
type JSONConfig struct {
	Indent int  `mapstructure:"indent" yaml:"indent"`
	ASCII  bool `mapstructure:"ascii" yaml:"ascii"`
}

// AnalysisConfig tunes the analyzer and chat output.
type AnalysisConfig struct {
	TopN           int    `mapstructure:"top_n" yaml:"top_n"`
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
}

// AIConfig configures the optional keyword extractor.
type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address     string `mapstructure:"address" yaml:"address"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// ProfilesConfig locates the header profiles file.
type ProfilesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	CSV      CSVConfig      `mapstructure:"csv" yaml:"csv"`
	JSON     JSONConfig     `mapstructure:"json" yaml:"json"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Profiles ProfilesConfig `mapstructure:"profiles" yaml:"profiles"`
}

// CSVOptions returns the reader and writer dialect.
func (c *Config) CSVOptions() common.CSVOptions {
	opts := common.DefaultCSVOptions()
	if r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter); r != utf8.RuneError {
		opts.Delimiter = r
	}
	if c.CSV.Encoding != "" {
		opts.Encoding = c.CSV.Encoding
	}
	return opts
}

// JSONOptions returns the converter output options.
func (c *Config) JSONOptions() common.JSONOptions {
	return common.JSONOptions{Indent: c.JSON.Indent, ASCII: c.JSON.ASCII}
}

// AITimeout returns the extractor request timeout.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the upload size limit of the HTTP API.
func (c *Config) MaxUploadBytes() int {
	return c.Server.MaxUploadMB * 1024 * 1024
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile behaves like InitializeConfig but reads
// configFile instead of searching the standard locations when it is set.
// An explicitly named file that cannot be read is an error.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.statement-analyzer")
		v.AddConfigPath(".statement-analyzer")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if !errors.As(err, &notFound) {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Handle special case for API key (always from env, not prefixed)
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.encoding", common.EncodingUTF8)
	v.SetDefault("csv.profile", "default")

	v.SetDefault("json.indent", 4)
	v.SetDefault("json.ascii", false)

	v.SetDefault("analysis.top_n", 20)
	v.SetDefault("analysis.currency_symbol", "₹")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.max_upload_mb", 10)

	v.SetDefault("profiles.file", "profiles.yaml")
}

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() *Config {
	return &Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		CSV:      CSVConfig{Delimiter: ",", Encoding: common.EncodingUTF8, Profile: "default"},
		JSON:     JSONConfig{Indent: 4},
		Analysis: AnalysisConfig{TopN: 20, CurrencySymbol: "₹"},
		AI:       AIConfig{Model: "gemini-2.0-flash", TimeoutSeconds: 30},
		Server:   ServerConfig{Address: ":8080", MaxUploadMB: 10},
		Profiles: ProfilesConfig{File: "profiles.yaml"},
	}
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if err := common.ValidateEncoding(config.CSV.Encoding); err != nil {
		return fmt.Errorf("csv.encoding: %w", err)
	}

	if config.JSON.Indent < 0 || config.JSON.Indent > 16 {
		return fmt.Errorf("json.indent must be between 0 and 16, got: %d", config.JSON.Indent)
	}

	if config.Analysis.TopN < 1 {
		return fmt.Errorf("analysis.top_n must be at least 1, got: %d", config.Analysis.TopN)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if config.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be at least 1, got: %d", config.Server.MaxUploadMB)
	}

	return nil
}

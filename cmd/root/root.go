// Package root contains the root command for the application
package root

import (
	"fmt"
	"strings"

	"fjacquet/statement-analyzer/internal/config"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	Profile    string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for the running command
	AppConfig *config.Config

	// AppContainer holds the wired application dependencies
	AppContainer *container.Container

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "statement-analyzer",
		Short: "Convert bank statement CSV exports to JSON and analyze them.",
		Long: `statement-analyzer converts bank statement CSV exports to structured JSON,
reports spending totals, maxima, top transactions and monthly sums, and
answers keyword questions such as "How much did I spend on 'rent'?".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-analyzer!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to release resources")
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches ./config.yaml, ./.statement-analyzer, $HOME/.statement-analyzer)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Profile, "profile", "p", "", "Header profile used to read CSV statements")
}

func initialize() error {
	config.LoadEnv(nil)

	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	ApplyFlags(cfg, SharedFlags)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	Log.Debug("Configuration loaded",
		logging.F(logging.FieldProfile, c.GetProfile().Name),
		logging.F("log_level", cfg.Log.Level))
	return nil
}

// ApplyFlags copies explicitly set persistent flags over the loaded
// configuration.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if level := strings.TrimSpace(flags.LogLevel); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if profile := strings.TrimSpace(flags.Profile); profile != "" {
		cfg.CSV.Profile = profile
	}
}

// GetContainer returns the application container, or nil before the root
// command has run its pre-run hook.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

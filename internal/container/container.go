// Package container provides dependency injection for the statement-analyzer
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/statement-analyzer/internal/chat"
	"fjacquet/statement-analyzer/internal/common"
	"fjacquet/statement-analyzer/internal/config"
	"fjacquet/statement-analyzer/internal/intent"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/normalizer"
	"fjacquet/statement-analyzer/internal/report"
	"fjacquet/statement-analyzer/internal/session"
	"fjacquet/statement-analyzer/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	profiles   *store.ProfileStore
	profile    store.Profile
	csvOptions common.CSVOptions
	normalizer *normalizer.Normalizer
	extractor  *intent.GeminiExtractor
	resolver   *intent.Resolver
	agent      *chat.Agent
	session    *session.Session
	reports    *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies using a
// logger built from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLogger(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = config.ConfigureLogger(cfg)
	}

	profiles := store.NewProfileStore(cfg.Profiles.File, logger)
	profile, err := profiles.Get(cfg.CSV.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load header profile: %w", err)
	}
	csvOptions := profile.CSVOptions(cfg.CSVOptions())
	if err := common.ValidateEncoding(csvOptions.Encoding); err != nil {
		return nil, fmt.Errorf("profile %q: %w", profile.Name, err)
	}

	norm := normalizer.New(profile.Columns, csvOptions, logger)

	var extractor *intent.GeminiExtractor
	var resolver *intent.Resolver
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		extractor = intent.NewGeminiExtractor(cfg.AI.APIKey, cfg.AI.Model, cfg.AITimeout(), logger)
		resolver = intent.NewResolver(extractor, logger)
		logger.Info("AI keyword extraction enabled", logging.F("model", cfg.AI.Model))
	} else {
		resolver = intent.NewResolver(nil, logger)
		logger.Debug("AI keyword extraction disabled")
	}

	c := &Container{
		logger:     logger,
		config:     cfg,
		profiles:   profiles,
		profile:    profile,
		csvOptions: csvOptions,
		normalizer: norm,
		extractor:  extractor,
		resolver:   resolver,
		agent:      chat.NewAgent(resolver, cfg.Analysis.CurrencySymbol, logger),
		session:    session.New(norm, logger),
		reports:    report.NewReportGenerator(profile.Columns, logger),
	}

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldProfile, profile.Name),
		logging.F("ai_enabled", extractor != nil))
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetProfileStore returns the header profile store.
func (c *Container) GetProfileStore() *store.ProfileStore {
	return c.profiles
}

// GetProfile returns the active header profile.
func (c *Container) GetProfile() store.Profile {
	return c.profile
}

// GetColumns returns the column layout of the active profile.
func (c *Container) GetColumns() models.Columns {
	return c.normalizer.Columns()
}

// GetCSVOptions returns the effective CSV dialect.
func (c *Container) GetCSVOptions() common.CSVOptions {
	return c.csvOptions
}

// GetNormalizer returns the statement normalizer.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetResolver returns the chat keyword resolver.
func (c *Container) GetResolver() *intent.Resolver {
	return c.resolver
}

// GetAgent returns the chat agent.
func (c *Container) GetAgent() *chat.Agent {
	return c.agent
}

// GetSession returns the shared record session.
func (c *Container) GetSession() *session.Session {
	return c.session
}

// GetReportGenerator returns the analysis report renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// Close releases the AI client, if one was created.
func (c *Container) Close() error {
	if c.extractor != nil {
		if err := c.extractor.Close(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	return nil
}

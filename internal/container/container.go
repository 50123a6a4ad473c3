// Package container provides dependency injection for the camt053 application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"github.com/rayslava/camt053/internal/batch"
	"github.com/rayslava/camt053/internal/codec"
	"github.com/rayslava/camt053/internal/common"
	"github.com/rayslava/camt053/internal/config"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/report"
	"github.com/rayslava/camt053/internal/store"
	"github.com/rayslava/camt053/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    store.DefinitionStore
	reporter *report.ReportGenerator
	csv      common.CSVOptions
}

// NewContainer creates and wires all application dependencies.
// The logger is built from cfg.Log.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	return NewContainerWithLogger(cfg, logger)
}

// NewContainerWithLogger is NewContainer with an externally built logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	delimiter, err := validation.IsValidCSVDelimiter(cfg.CSV.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("invalid csv configuration: %w", err)
	}
	if err := validation.IsValidDateFormat(cfg.CSV.DateFormat); err != nil {
		return nil, fmt.Errorf("invalid csv configuration: %w", err)
	}

	c := &Container{
		logger:   logger,
		config:   cfg,
		store:    store.NewFileStore(cfg.Definitions.Directory, logger),
		reporter: report.NewReportGenerator(logger),
		csv: common.CSVOptions{
			Delimiter:      delimiter,
			DateFormat:     cfg.CSV.DateFormat,
			IncludeHeaders: cfg.CSV.IncludeHeaders,
		},
	}

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldWorkers, cfg.Batch.Workers),
		logging.F(logging.FieldDelimiter, cfg.CSV.Delimiter))

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

// GetStore returns the statement definition store.
func (c *Container) GetStore() store.DefinitionStore {
	return c.store
}

// WithStore returns a copy of the container that loads and saves
// definitions through s.
func (c *Container) WithStore(s store.DefinitionStore) *Container {
	clone := *c
	clone.store = s
	return &clone
}

// GetReportGenerator returns the summary renderer used by inspect.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// CSVOptions returns the configured CSV layout.
func (c *Container) CSVOptions() common.CSVOptions {
	return c.csv
}

// EncodeOptions returns the configured XML output layout.
func (c *Container) EncodeOptions() []codec.EncodeOption {
	opts := []codec.EncodeOption{codec.WithXMLHeader(c.config.Output.XMLHeader)}
	if c.config.Output.Indent != "" {
		opts = append(opts, codec.WithIndent("", c.config.Output.Indent))
	}
	return opts
}

// NewBatchProcessor returns a processor configured from the batch section.
// Workers, Pattern and FailFast in override take precedence when set;
// Consolidate is taken as given.
func (c *Container) NewBatchProcessor(override batch.Options) *batch.Processor {
	opts := batch.Options{
		Workers:     c.config.Batch.Workers,
		Pattern:     c.config.Batch.Pattern,
		FailFast:    c.config.Batch.FailFast || override.FailFast,
		Consolidate: override.Consolidate,
		CSV:         c.csv,
	}
	if override.Workers > 0 {
		opts.Workers = override.Workers
	}
	if override.Pattern != "" {
		opts.Pattern = override.Pattern
	}
	if override.CSV.Delimiter != 0 {
		opts.CSV = override.CSV
	}
	return batch.NewProcessor(c.logger, opts)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}

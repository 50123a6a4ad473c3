package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CAMT053_CSV_DELIMITER overrides csv.delimiter.
const EnvPrefix = "CAMT053"

// Supported values of csv.date_format.
const (
	DateFormatISO   = "YYYY-MM-DD"
	DateFormatSwiss = "DD.MM.YYYY"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Output struct {
		// Indent is the per-level indentation of generated XML; empty writes
		// a single line.
		Indent    string `mapstructure:"indent" yaml:"indent"`
		XMLHeader bool   `mapstructure:"xml_header" yaml:"xml_header"`
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"output" yaml:"output"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		DateFormat     string `mapstructure:"date_format" yaml:"date_format"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Definitions struct {
		// Directory is searched for YAML statement definitions after the
		// working directory.
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"definitions" yaml:"definitions"`

	Batch struct {
		Workers  int    `mapstructure:"workers" yaml:"workers"`
		Pattern  string `mapstructure:"pattern" yaml:"pattern"`
		FailFast bool   `mapstructure:"fail_fast" yaml:"fail_fast"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig loads configuration from defaults, the first config.yaml
// found in $HOME/.camt053, .camt053 or the working directory, and CAMT053_*
// environment variables, in increasing order of precedence.
func InitializeConfig() (*Config, error) {
	return load("")
}

// InitializeConfigFromFile is like InitializeConfig but reads the given file
// instead of searching for config.yaml. The file must exist.
func InitializeConfigFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config file path cannot be empty")
	}
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.camt053")
		v.AddConfigPath(".camt053")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.indent", "  ")
	v.SetDefault("output.xml_header", true)
	v.SetDefault("output.directory", "")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", DateFormatISO)
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("definitions.directory", "")

	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.pattern", "*.xml")
	v.SetDefault("batch.fail_fast", false)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.Trim(config.Output.Indent, " \t") != "" {
		return fmt.Errorf("output.indent may only contain spaces and tabs, got: %q", config.Output.Indent)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.CSV.DateFormat != DateFormatISO && config.CSV.DateFormat != DateFormatSwiss {
		return fmt.Errorf("csv.date_format must be %s or %s, got: %s", DateFormatISO, DateFormatSwiss, config.CSV.DateFormat)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 256 {
		return fmt.Errorf("batch.workers must be between 1 and 256, got: %d", config.Batch.Workers)
	}

	if config.Batch.Pattern == "" {
		return errors.New("batch.pattern cannot be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

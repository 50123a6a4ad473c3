// Package root contains the root command for the application
package root

import (
	"fmt"
	"os"
	"sync"

	"github.com/rayslava/camt053/internal/config"
	"github.com/rayslava/camt053/internal/container"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/validation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

// AddCommonFlags registers --input, --output and --validate on cmd.
func AddCommonFlags(cmd *cobra.Command, flags *CommonFlags, inputUsage, outputUsage string) {
	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", inputUsage)
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", outputUsage)
	cmd.Flags().BoolVarP(&flags.Validate, "validate", "v", false, "Probe the input structure before decoding")
}

// GlobalFlags are the persistent flags of the root command.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Flags holds the values of the persistent flags of Cmd
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = NewCmd()

	mu           sync.Mutex
	appContainer *container.Container
)

// NewCmd builds the root command without subcommands.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "camt053",
		Short: "A CLI tool to generate and read ISO 20022 camt.053 bank statements.",
		Long: `camt053 generates camt.053.001.02 bank-to-customer statement XML from YAML
definitions and reads existing statements back into summaries, CSV or YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Reset()
		},
	}

	cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config", "", "Config file (default searches $HOME/.camt053, .camt053 and .)")
	cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format (text or json)")
	return cmd
}

// Initialize loads .env and configuration, applies flag overrides and
// builds the application container. A container set with SetContainer is
// kept.
func Initialize() error {
	mu.Lock()
	defer mu.Unlock()
	if appContainer != nil {
		return nil
	}

	if _, err := config.LoadEnv(Log); err != nil {
		Log.WithError(err).Warn("Failed to load .env file")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if Flags.LogLevel != "" {
		cfg.Log.Level = Flags.LogLevel
	}
	if Flags.LogFormat != "" {
		cfg.Log.Format = Flags.LogFormat
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	Log = c.GetLogger()

	if Flags.ConfigFile != "" {
		if info, err := os.Stat(Flags.ConfigFile); err == nil {
			if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
				Log.Warn("Insecure config file permissions",
					logging.F(logging.FieldFile, Flags.ConfigFile),
					logging.F(logging.FieldError, err.Error()))
			}
		}
	}

	Log.Debug("Configuration loaded",
		logging.F("log_level", cfg.Log.Level),
		logging.F(logging.FieldWorkers, cfg.Batch.Workers))
	return nil
}

func loadConfig() (*config.Config, error) {
	if Flags.ConfigFile != "" {
		return config.InitializeConfigFromFile(Flags.ConfigFile)
	}
	return config.InitializeConfig()
}

// GetContainer returns the application container, building one from the
// default configuration when the root command has not run.
func GetContainer() *container.Container {
	mu.Lock()
	defer mu.Unlock()
	if appContainer == nil {
		c, err := container.NewContainerWithLogger(config.Default(), Log)
		if err != nil {
			// Default configuration always validates.
			panic(err)
		}
		appContainer = c
	}
	return appContainer
}

// SetContainer replaces the application container, e.g. with one using a
// mock logger in tests.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// Reset closes and forgets the current container.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if appContainer != nil {
		_ = appContainer.Close()
		appContainer = nil
	}
}

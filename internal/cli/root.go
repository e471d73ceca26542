// internal/cli/root.go
package inaviz

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mwiater/inaviz/internal/appconfig"
	"github.com/mwiater/inaviz/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "inaviz",
	Short: "inaviz — figures and statistics for in-network aggregation scheduling experiments",
	Long: `inaviz reads the JSON result files written by the MINA scheduling simulator,
derives the plotted series (windowed averages, ratios, distributions,
correlations) and writes publication figures plus console summaries.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersionInfo sets the string printed by --version.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (rootCmd -> ensureConfigLoaded -> rootCmd).
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) Materialize the merged configuration (flags > config > defaults).
		cfg, err := appconfig.FromViper(viper.GetViper())
		if err != nil {
			return err
		}
		currentConfig = &cfg

		// 3) Logging follows the final configuration.
		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		logging.SetDebug(cfg.Debug)
		logging.Debugf("config loaded from %q: %+v", cfg.ConfigPath, cfg)
		return nil
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file, JSON or YAML (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("resultsDir", "", "directory holding the simulator result files")
	rootCmd.PersistentFlags().String("figuresDir", "", "directory figures are written to")
	rootCmd.PersistentFlags().String("format", "", "figure format: pdf, svg, png, jpg or eps")
	rootCmd.PersistentFlags().String("backend", "", "render backend: plot or gochart")
	rootCmd.PersistentFlags().String("language", "", "label language: en or zh")
	rootCmd.PersistentFlags().String("logFile", "", "log file path")

	// Bind flags to Viper keys (flags override config)
	for _, name := range []string{"debug", "resultsDir", "figuresDir", "format", "backend", "language", "logFile"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded registers the defaults and reads the config file. A
// missing file is only an error when it was named explicitly.
func ensureConfigLoaded() error {
	appconfig.SetDefaults(viper.GetViper())

	if cfgFile == "" {
		return nil
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if missing && !rootCmd.PersistentFlags().Changed("config") {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// getConfig returns the loaded application configuration.
func getConfig() appconfig.Config {
	if currentConfig == nil {
		return appconfig.Default()
	}
	return *currentConfig
}

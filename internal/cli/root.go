// Package cli implements the gameflux command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"gameflux/backend/internal/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	LogFile    string
	ConfigFile string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.gameflux, /etc/gameflux)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

var rootCmd = &cobra.Command{
	Use:   "gameflux",
	Short: "GameFlux serves the game catalog, favorites and admin API",
	Long:  `GameFlux is the backend of the GameFlux game catalog: browse and search games, keep favorites, manage profiles and administer users.`,
	Example: `gameflux serve --config config.yml
  gameflux migrate -c /path/to/config.yml
  gameflux catalog --log-level debug`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if rootCmdPersistentFlags.LogLevel != "" {
			setLogLevel(rootCmdPersistentFlags.LogLevel)
		}
		logToFile()
	},
}

// loadConfig reads the config and applies its log level unless --log-level was given.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootCmdPersistentFlags.LogLevel == "" && cfg.LogLevel != "" {
		setLogLevel(cfg.LogLevel)
	}
	return cfg, nil
}

func setLogLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %s, defaulting to info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func logToFile() {
	if rootCmdPersistentFlags.LogFile == "" {
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}

	// Create a multi-writer that writes to both console and file
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	log.Info("logging to both console and file", "file", rootCmdPersistentFlags.LogFile)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

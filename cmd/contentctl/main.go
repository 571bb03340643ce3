package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tendant/content-model/pkg/contentmodel"
	"github.com/tendant/content-model/pkg/contentmodel/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	_ = godotenv.Load()

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contentctl",
		Short: "Content model CLI",
		Long: `Content model command line interface.

Loads content type declarations from a YAML manifest and either serves
them over HTTP or resolves attributes from the command line.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (yaml, json, toml or .env)")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "type manifest (overrides MANIFEST_PATH)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewTypesCommand())
	rootCmd.AddCommand(NewGetCommand())

	return rootCmd
}

// loadConfig reads the config file, the environment and the flags, in that
// order of precedence from lowest to highest.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")
	manifestPath, _ := cmd.Flags().GetString("manifest")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(
		config.WithFile(configFile),
		config.WithEnv(""),
		config.WithManifest(manifestPath),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())
	return cfg, logger, nil
}

func buildRegistry(cmd *cobra.Command, sinks ...contentmodel.EventSink) (*config.Config, *contentmodel.Registry, *slog.Logger, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	reg, err := cfg.BuildRegistry(logger, sinks...)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, reg, logger, nil
}

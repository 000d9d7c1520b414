package main

import (
	"questionai/internal/config"
	"questionai/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "questionai",
	Short:        "Generate question papers with a generative AI model",
	Long:         "questionai builds a prompt from the question type, count, topic and difficulty, asks the configured model for a question paper and shows or exports the result.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to a .env file loaded before reading configuration")
	rootCmd.PersistentFlags().String("provider", "", "Generator provider, gemini or openai (overrides GENERATOR_PROVIDER)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
}

// loadConfig loads the .env file and the configuration, applying flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if _, err := config.LoadDotEnv(envFile); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Read()
	if err != nil {
		return nil, nil, err
	}
	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		cfg.Provider = provider
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, logging.New(cfg.Log), nil
}

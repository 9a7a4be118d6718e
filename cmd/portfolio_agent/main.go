// Package main provides the portfolio_agent command line: the HTTP API server plus offline
// commands that parse, edit, augment and export portfolio documents stored as JSON files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool

	cfg    = defaultConfig()
	logger = zap.NewNop()
)

// newClient and newPrinter are replaced in tests
var (
	newClient = func(ctx context.Context, c *config.Config) (llm.Client, error) {
		if c.APIKey == "" {
			return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY or PORTFOLIO_API_KEY)")
		}
		models, err := llm.DefaultConfig().Override(c.Models)
		if err != nil {
			return nil, err
		}
		return llm.NewClient(ctx, models, c.APIKey)
	}
	newPrinter = func(c *config.Config) export.Printer {
		return &export.PDFPrinter{ExecPath: c.ChromePath, Logger: logger}
	}
)

var rootCmd = &cobra.Command{
	Use:   "portfolio_agent",
	Short: "Portfolio builder",
	Long: "Portfolio builder turns a résumé into an editable portfolio document, " +
		"augments it with generated text and exports it as a self-contained page.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Verbose = true
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cfg.Verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
}

// commandContext is cmd's context, or Background when the command runs outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func defaultConfig() *config.Config {
	d := config.Defaults()
	return &d
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

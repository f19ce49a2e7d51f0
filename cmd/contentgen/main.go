// Command contentgen runs the skincare content generation pipeline:
// given a product record it produces an FAQ page, a product page, and a
// comparison page as JSON artifacts.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/config"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/product"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/sink"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/stages"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/llm"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/journal"
)

var (
	inputPath   string
	outputDir   string
	configPath  string
	journalPath string
	timeout     time.Duration
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "contentgen",
	Short: "Generate skincare product content pages from a product record",
	Long: `contentgen runs a multi-stage content generation pipeline over a
skincare product record. It produces faq.json, product_page.json,
comparison_page.json, and execution_summary.json in the output
directory.

Without GEMINI_API_KEY set, every stage uses deterministic templated
content so the pipeline stays usable offline.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to a product record JSON file (default: built-in sample product)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for artifacts (default from config)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML or JSON config file")
	rootCmd.Flags().StringVar(&journalPath, "journal", "", "path to a SQLite journal database (journaling off when empty)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "overall run timeout (default from config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	logger := newLogger(verbose)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if timeout > 0 {
		cfg.Timeout = config.Duration(timeout)
	}
	if journalPath != "" {
		cfg.JournalPath = journalPath
	}

	rec, err := loadProduct(inputPath, logger)
	if err != nil {
		return err
	}

	var gen llm.Generator
	if cfg.HasAPIKey() {
		gen = llm.NewGemini(cfg.APIKey,
			llm.WithModel(cfg.Model),
			llm.WithTemperature(cfg.Temperature),
			llm.WithMaxOutputTokens(cfg.MaxOutputTokens),
		)
		logger.Info("using model", "model", cfg.Model)
	} else {
		logger.Warn("GEMINI_API_KEY not set, generating templated content only")
	}

	compiled, err := stages.Build(gen, sink.NewDir(cfg.OutputDir)).Compile()
	if err != nil {
		return fmt.Errorf("compile pipeline: %w", err)
	}

	runOpts := []pipeline.RunOption{pipeline.WithRunLogger(logger)}
	if cfg.JournalPath != "" {
		store, err := journal.NewSQLiteStore(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
		runOpts = append(runOpts, pipeline.WithJournal(store))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout.Std())
	defer cancel()

	final, err := compiled.Run(pipeline.NewContext(ctx, pipeline.WithLogger(logger)), stages.State{Product: rec}, runOpts...)
	if err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			return fmt.Errorf("pipeline failed at %s: %w", stageErr.StageID, err)
		}
		return fmt.Errorf("pipeline failed: %w", err)
	}

	for _, art := range final.Artifacts {
		logger.Info("wrote artifact", "path", art.Path, "size_bytes", art.Size)
	}
	fmt.Printf("Generated %d artifacts in %s\n", len(final.Artifacts), cfg.OutputDir)
	return nil
}

// loadConfig reads the config file when given, else returns defaults.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadProduct reads and validates the input record. Invalid input is
// fatal; no input at all falls back to the built-in sample product.
func loadProduct(path string, logger *slog.Logger) (product.Record, error) {
	if path == "" {
		logger.Info("no input file given, using built-in sample product")
		return product.Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return product.Record{}, fmt.Errorf("read input file: %w", err)
	}
	rec, err := product.Decode(data)
	if err != nil {
		return product.Record{}, fmt.Errorf("invalid product record in %s: %w", path, err)
	}
	return rec, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

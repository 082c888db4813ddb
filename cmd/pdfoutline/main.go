// Command pdfoutline writes the outline of every PDF in a directory as JSON.
//
// Usage:
//
//	pdfoutline                                  # /app/input -> /app/output
//	pdfoutline -input ./pdfs -output ./json     # explicit directories
//	pdfoutline -config pdfoutline.yaml          # thresholds from YAML
//	pdfoutline -file report.pdf -output ./json  # a single file
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline"
	"github.com/tsawler/pdfoutline/batch"
	"github.com/tsawler/pdfoutline/config"
)

type flags struct {
	configPath string
	input      string
	output     string
	file       string
	timeout    time.Duration
	workers    int
	logLevel   string
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&f.input, "input", "", "input directory (default /app/input)")
	flag.StringVar(&f.output, "output", "", "output directory (default /app/output)")
	flag.StringVar(&f.file, "file", "", "process a single PDF instead of the input directory")
	flag.DurationVar(&f.timeout, "timeout", 0, "per-document time budget (default 10s)")
	flag.IntVar(&f.workers, "workers", 0, "pages processed at once (default: number of CPUs)")
	flag.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfoutline: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfoutline: failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, f.file, logger); err != nil {
		logger.Error("pdfoutline: fatal", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(f flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(f.configPath); err != nil {
			return nil, err
		}
	}

	if f.input != "" {
		cfg.InputDir = f.input
	}
	if f.output != "" {
		cfg.OutputDir = f.output
	}
	if f.timeout > 0 {
		cfg.Pipeline.Timeout = f.timeout
	}
	if f.workers > 0 {
		cfg.Pipeline.Workers = f.workers
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, cfg.Validate()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}

func run(ctx context.Context, cfg *config.Config, file string, logger *zap.Logger) error {
	outline := pdfoutline.Open("").WithConfig(cfg).Logger(logger).OutlineFunc()

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file: %w", err)
		}
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		_, err := batch.NewRunner("", cfg.OutputDir, outline, logger).ProcessFile(ctx, file)
		return err
	}

	if info, err := os.Stat(cfg.InputDir); err != nil {
		return fmt.Errorf("input directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("input directory: %s is not a directory", cfg.InputDir)
	}

	_, err := batch.NewRunner(cfg.InputDir, cfg.OutputDir, outline, logger).Run(ctx)
	return err
}

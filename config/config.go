// Package config loads pdfoutline settings from a YAML file and fills in
// defaults for everything left out.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/ocr"
	"github.com/tsawler/pdfoutline/pipeline"
)

// Config is the top-level configuration.
type Config struct {
	InputDir  string         `yaml:"input_dir"`
	OutputDir string         `yaml:"output_dir"`
	LogLevel  string         `yaml:"log_level"` // debug | info | warn | error
	Pipeline  PipelineConfig `yaml:"pipeline"`
	Acquire   AcquireConfig  `yaml:"acquire"`
	Layout    LayoutConfig   `yaml:"layout"`
}

// PipelineConfig bounds each document run.
type PipelineConfig struct {
	MaxPages int           `yaml:"max_pages"`
	Workers  int           `yaml:"workers"`
	Timeout  time.Duration `yaml:"timeout"`
}

// AcquireConfig controls native extraction and OCR.
type AcquireConfig struct {
	TextThreshold    int     `yaml:"text_threshold"`
	OCRDPI           float64 `yaml:"ocr_dpi"`
	OCRMinConfidence float64 `yaml:"ocr_min_confidence"`
	OCRSizeScale     float64 `yaml:"ocr_size_scale"`
	OCRLanguage      string  `yaml:"ocr_language"`
	OCRMaxPixels     int     `yaml:"ocr_max_pixels"`
}

// LayoutConfig holds the heading inference thresholds.
type LayoutConfig struct {
	SizeTolerance        float64 `yaml:"size_tolerance"`
	StructuredMaxSizes   int     `yaml:"structured_max_sizes"`
	MinHeadingRatio      float64 `yaml:"min_heading_ratio"`
	StandardMaxWords     int     `yaml:"standard_max_words"`
	StructuredMaxWords   int     `yaml:"structured_max_words"`
	OrientationTolerance float64 `yaml:"orientation_tolerance"`
	RepeatFraction       float64 `yaml:"repeat_fraction"`
	RepeatBand           float64 `yaml:"repeat_band"`
	RepeatMinPages       int     `yaml:"repeat_min_pages"`
	PosterMode           bool    `yaml:"poster_mode"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	acq := pipeline.DefaultAcquireConfig()
	cfg := &Config{
		Acquire: AcquireConfig{
			TextThreshold:    acq.TextThreshold,
			OCRMinConfidence: acq.OCRMinConfidence,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Keys left out of the file keep their defaults, so text_threshold and
	// ocr_min_confidence can be set to zero.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = "/app/input"
	}
	if c.OutputDir == "" {
		c.OutputDir = "/app/output"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Pipeline.MaxPages <= 0 {
		c.Pipeline.MaxPages = 50
	}
	if c.Pipeline.Workers <= 0 {
		c.Pipeline.Workers = runtime.NumCPU()
	}
	if c.Pipeline.Timeout <= 0 {
		c.Pipeline.Timeout = 10 * time.Second
	}

	acq := pipeline.DefaultAcquireConfig()
	if c.Acquire.OCRDPI <= 0 {
		c.Acquire.OCRDPI = acq.OCRDPI
	}
	if c.Acquire.OCRSizeScale <= 0 {
		c.Acquire.OCRSizeScale = acq.OCRSizeScale
	}
	if c.Acquire.OCRLanguage == "" {
		c.Acquire.OCRLanguage = "eng"
	}
	if c.Acquire.OCRMaxPixels <= 0 {
		c.Acquire.OCRMaxPixels = 12_000_000
	}

	lay := layout.DefaultConfig()
	if c.Layout.SizeTolerance <= 0 {
		c.Layout.SizeTolerance = lay.SizeTolerance
	}
	if c.Layout.StructuredMaxSizes <= 0 {
		c.Layout.StructuredMaxSizes = lay.StructuredMaxSizes
	}
	if c.Layout.MinHeadingRatio <= 0 {
		c.Layout.MinHeadingRatio = lay.MinHeadingRatio
	}
	if c.Layout.StandardMaxWords <= 0 {
		c.Layout.StandardMaxWords = lay.StandardMaxWords
	}
	if c.Layout.StructuredMaxWords <= 0 {
		c.Layout.StructuredMaxWords = lay.StructuredMaxWords
	}
	if c.Layout.OrientationTolerance <= 0 {
		c.Layout.OrientationTolerance = lay.OrientationTolerance
	}
	if c.Layout.RepeatFraction <= 0 {
		c.Layout.RepeatFraction = lay.RepeatFraction
	}
	if c.Layout.RepeatBand <= 0 {
		c.Layout.RepeatBand = lay.RepeatBand
	}
	if c.Layout.RepeatMinPages <= 0 {
		c.Layout.RepeatMinPages = lay.RepeatMinPages
	}
}

// Validate rejects values that cannot work.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Layout.RepeatFraction >= 1 {
		return fmt.Errorf("repeat_fraction must be below 1, got %v", c.Layout.RepeatFraction)
	}
	if c.Layout.SizeTolerance >= 1 {
		return fmt.Errorf("size_tolerance must be below 1, got %v", c.Layout.SizeTolerance)
	}
	if c.Layout.MinHeadingRatio < 1 {
		return fmt.Errorf("min_heading_ratio must be at least 1, got %v", c.Layout.MinHeadingRatio)
	}
	if c.Acquire.OCRMinConfidence < 0 || c.Acquire.OCRMinConfidence > 100 {
		return fmt.Errorf("ocr_min_confidence must be between 0 and 100, got %v", c.Acquire.OCRMinConfidence)
	}
	if c.Acquire.TextThreshold < 0 {
		return fmt.Errorf("text_threshold must not be negative, got %d", c.Acquire.TextThreshold)
	}
	return nil
}

// PipelineOptions converts to the scheduler configuration.
func (c *Config) PipelineOptions() pipeline.Config {
	return pipeline.Config{
		MaxPages: c.Pipeline.MaxPages,
		Workers:  c.Pipeline.Workers,
		Timeout:  c.Pipeline.Timeout,
	}
}

// AcquireOptions converts to the page acquirer configuration.
func (c *Config) AcquireOptions() pipeline.AcquireConfig {
	return pipeline.AcquireConfig{
		TextThreshold:    c.Acquire.TextThreshold,
		OCRDPI:           c.Acquire.OCRDPI,
		OCRMinConfidence: c.Acquire.OCRMinConfidence,
		OCRSizeScale:     c.Acquire.OCRSizeScale,
	}
}

// OCROptions converts to the recognition engine configuration.
func (c *Config) OCROptions() ocr.Config {
	return ocr.Config{
		Language:  c.Acquire.OCRLanguage,
		MaxPixels: c.Acquire.OCRMaxPixels,
	}
}

// LayoutOptions converts to the layout analyzer configuration.
func (c *Config) LayoutOptions() layout.Config {
	return layout.Config{
		SizeTolerance:        c.Layout.SizeTolerance,
		StructuredMaxSizes:   c.Layout.StructuredMaxSizes,
		MinHeadingRatio:      c.Layout.MinHeadingRatio,
		StandardMaxWords:     c.Layout.StandardMaxWords,
		StructuredMaxWords:   c.Layout.StructuredMaxWords,
		OrientationTolerance: c.Layout.OrientationTolerance,
		RepeatFraction:       c.Layout.RepeatFraction,
		RepeatBand:           c.Layout.RepeatBand,
		RepeatMinPages:       c.Layout.RepeatMinPages,
		PosterMode:           c.Layout.PosterMode,
	}
}

// Package config loads runtime settings from the environment.
//
// An optional .env file is read first (values already in the environment
// win), then every FONTFIT_* variable falls back to its default. Unparseable
// numbers fall back to the default as well; Validate catches values that
// parse but make no sense.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
	"github.com/ironsheep/fontfit-mcp/internal/imaging"
	"github.com/ironsheep/fontfit-mcp/internal/ocr"
)

// Config holds every tunable of the service.
type Config struct {
	FontPath string

	MinSize      int
	MaxSize      int
	CoarseStep   int
	FineStep     float64
	FineWindow   int
	BaselineStep int

	ExpandRatio float64
	BlockSize   int
	ThresholdC  float64

	Workers     int
	TargetWidth int

	OCRLanguage      string
	MinOCRConfidence float64

	OutputDir string
	RedisURL  string
	ResultTTL time.Duration

	OverlayColor string
	OverlayAlpha int

	LogLevel string
}

// Load reads envFiles (default ".env") if present, then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	cfg := &Config{
		FontPath:         getEnvOrDefault("FONTFIT_FONT_PATH", ""),
		MinSize:          getEnvAsIntOrDefault("FONTFIT_MIN_SIZE", fontfit.DefaultMinSize),
		MaxSize:          getEnvAsIntOrDefault("FONTFIT_MAX_SIZE", fontfit.DefaultMaxSize),
		CoarseStep:       getEnvAsIntOrDefault("FONTFIT_COARSE_STEP", fontfit.DefaultCoarseStep),
		FineStep:         getEnvAsFloatOrDefault("FONTFIT_FINE_STEP", fontfit.DefaultFineStep),
		FineWindow:       getEnvAsIntOrDefault("FONTFIT_FINE_WINDOW", fontfit.DefaultFineWindow),
		BaselineStep:     getEnvAsIntOrDefault("FONTFIT_BASELINE_STEP", fontfit.DefaultBaselineStep),
		ExpandRatio:      getEnvAsFloatOrDefault("FONTFIT_EXPAND_RATIO", fontfit.DefaultExpandRatio),
		BlockSize:        getEnvAsIntOrDefault("FONTFIT_BLOCK_SIZE", fontfit.DefaultBlockSize),
		ThresholdC:       getEnvAsFloatOrDefault("FONTFIT_THRESHOLD_C", fontfit.DefaultThresholdC),
		Workers:          getEnvAsIntOrDefault("FONTFIT_WORKERS", 1),
		TargetWidth:      getEnvAsIntOrDefault("FONTFIT_TARGET_WIDTH", imaging.DefaultTargetWidth),
		OCRLanguage:      getEnvOrDefault("FONTFIT_OCR_LANGUAGE", ocr.DefaultLanguage),
		MinOCRConfidence: getEnvAsFloatOrDefault("FONTFIT_MIN_OCR_CONFIDENCE", 0.5),
		OutputDir:        getEnvOrDefault("FONTFIT_OUTPUT_DIR", "outputs"),
		RedisURL:         getEnvOrDefault("FONTFIT_REDIS_URL", ""),
		ResultTTL:        getEnvAsDurationOrDefault("FONTFIT_RESULT_TTL", 24*time.Hour),
		OverlayColor:     getEnvOrDefault("FONTFIT_OVERLAY_COLOR", "#FF0000"),
		OverlayAlpha:     getEnvAsIntOrDefault("FONTFIT_OVERLAY_ALPHA", 128),
		LogLevel:         getEnvOrDefault("FONTFIT_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the fitter or the output stage cannot use.
func (c *Config) Validate() error {
	if c.MinSize < 1 {
		return fmt.Errorf("FONTFIT_MIN_SIZE must be >= 1, got %d", c.MinSize)
	}
	if c.MinSize >= c.MaxSize {
		return fmt.Errorf("FONTFIT_MIN_SIZE (%d) must be below FONTFIT_MAX_SIZE (%d)", c.MinSize, c.MaxSize)
	}
	if err := c.SearchOptions().Validate(); err != nil {
		return err
	}
	if c.Workers < 1 || c.Workers > 64 {
		return fmt.Errorf("FONTFIT_WORKERS must be between 1 and 64, got %d", c.Workers)
	}
	if c.TargetWidth < 1 {
		return fmt.Errorf("FONTFIT_TARGET_WIDTH must be >= 1, got %d", c.TargetWidth)
	}
	if c.MinOCRConfidence < 0 || c.MinOCRConfidence > 1 {
		return fmt.Errorf("FONTFIT_MIN_OCR_CONFIDENCE must be between 0 and 1, got %g", c.MinOCRConfidence)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("FONTFIT_OUTPUT_DIR is required")
	}
	if _, err := colorful.Hex(c.OverlayColor); err != nil {
		return fmt.Errorf("FONTFIT_OVERLAY_COLOR %q is not a #RRGGBB colour", c.OverlayColor)
	}
	if c.OverlayAlpha < 0 || c.OverlayAlpha > 255 {
		return fmt.Errorf("FONTFIT_OVERLAY_ALPHA must be between 0 and 255, got %d", c.OverlayAlpha)
	}
	return nil
}

// SearchOptions maps the search and binarization settings onto fontfit.
func (c *Config) SearchOptions() fontfit.SearchOptions {
	return fontfit.SearchOptions{
		CoarseStep:   c.CoarseStep,
		FineStep:     c.FineStep,
		FineWindow:   c.FineWindow,
		BaselineStep: c.BaselineStep,
		Binarize: fontfit.BinarizeOptions{
			ExpandRatio: c.ExpandRatio,
			BlockSize:   c.BlockSize,
			ThresholdC:  c.ThresholdC,
		},
	}
}

// AdaptOptions maps the OCR filter settings onto ocr.
func (c *Config) AdaptOptions() ocr.AdaptOptions {
	opts := ocr.DefaultAdaptOptions()
	opts.MinConfidence = c.MinOCRConfidence
	return opts
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnvOrDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnvOrDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

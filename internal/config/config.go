package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name, e.g.
// INKBOARD_LOG_LEVEL.
const Prefix = "INKBOARD"

type Config struct {
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	MinRegionSize    int           `envconfig:"MIN_REGION_SIZE" default:"100"`
	GroupingDistance float64       `envconfig:"GROUPING_DISTANCE" default:"80"`
	DilateRadius     float64       `envconfig:"DILATE_RADIUS" default:"0"`
	IdleDelay        time.Duration `envconfig:"IDLE_DELAY" default:"1500ms"`
	InkColor         string        `envconfig:"INK_COLOR" default:"#000000"`
	PenSize          float64       `envconfig:"PEN_SIZE" default:"4"`
	OCRLanguage      string        `envconfig:"OCR_LANGUAGE" default:"eng"`
	RasterPadding    int           `envconfig:"RASTER_PADDING" default:"16"`
	MaxRasterPixels  int           `envconfig:"MAX_RASTER_PIXELS" default:"25000000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch {
	case c.MinRegionSize < 0:
		return fmt.Errorf("%s_MIN_REGION_SIZE must be >= 0, got %d", Prefix, c.MinRegionSize)
	case c.GroupingDistance < 0:
		return fmt.Errorf("%s_GROUPING_DISTANCE must be >= 0, got %v", Prefix, c.GroupingDistance)
	case c.DilateRadius < 0:
		return fmt.Errorf("%s_DILATE_RADIUS must be >= 0, got %v", Prefix, c.DilateRadius)
	case c.IdleDelay < 0:
		return fmt.Errorf("%s_IDLE_DELAY must be >= 0, got %v", Prefix, c.IdleDelay)
	case c.PenSize <= 0:
		return fmt.Errorf("%s_PEN_SIZE must be > 0, got %v", Prefix, c.PenSize)
	case c.RasterPadding < 0:
		return fmt.Errorf("%s_RASTER_PADDING must be >= 0, got %d", Prefix, c.RasterPadding)
	case c.MaxRasterPixels <= 0:
		return fmt.Errorf("%s_MAX_RASTER_PIXELS must be > 0, got %d", Prefix, c.MaxRasterPixels)
	}
	return nil
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

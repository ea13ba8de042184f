package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             int     `envconfig:"PORT" default:"8080"`
	FrameRate        int     `envconfig:"FRAME_RATE" default:"60"`
	AllowedOrigins   string  `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	CatalogPath      string  `envconfig:"CATALOG_PATH"`
	ViewportWidth    float64 `envconfig:"VIEWPORT_WIDTH" default:"1280"`
	ViewportHeight   float64 `envconfig:"VIEWPORT_HEIGHT" default:"720"`
	FontSize         float64 `envconfig:"FONT_SIZE" default:"16"`
	LogLevel         string  `envconfig:"LOG_LEVEL" default:"info"`
	PreviewMaxFrames int     `envconfig:"PREVIEW_MAX_FRAMES" default:"2000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.FrameRate <= 0 {
		return nil, fmt.Errorf("FRAME_RATE must be positive, got %d", cfg.FrameRate)
	}
	if cfg.ViewportWidth <= 0 || cfg.ViewportHeight <= 0 || cfg.FontSize <= 0 {
		return nil, fmt.Errorf("viewport size and font size must be positive")
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

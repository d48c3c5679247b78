package app

import (
	"errors"
	"fmt"

	"datamix-tools/internal/quantize"
	"datamix-tools/utils"
)

// Config holds everything one run needs.
type Config struct {
	MixturePath string
	PathsPath   string
	// OutputPath selects file output; empty prints one row per line to stdout.
	OutputPath string
	Precision  int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.MixturePath == "" {
		return nil, errors.New("mixture path is required")
	}

	if cfg.PathsPath == "" {
		return nil, errors.New("paths path is required")
	}

	if !utils.IsInRange(0, cfg.Precision, quantize.MaxPrecision) {
		return nil, fmt.Errorf("precision must be between 0 and %d, got %d", quantize.MaxPrecision, cfg.Precision)
	}

	return &cfg, nil
}

// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/agent-eval-gang/tracediff-go/internal/align"
)

// Config holds all application configuration.
type Config struct {
	LogLevel string

	// MatchThreshold overrides the similarity bar for matched pairs.
	MatchThreshold float64
	// MinPairScore overrides the substitution gate of the aligner.
	MinPairScore float64

	// OTelEnabled turns on OTLP trace export for the compare commands.
	OTelEnabled bool
	ServiceName string
}

// LoadFromEnv reads configuration from environment variables with sensible defaults.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		LogLevel:       envOr("TRACEDIFF_LOG_LEVEL", "info"),
		MatchThreshold: 1.0,
		MinPairScore:   0.3,
		OTelEnabled:    os.Getenv("TRACEDIFF_OTEL_ENABLED") == "true",
		ServiceName:    envOr("TRACEDIFF_SERVICE_NAME", "tracediff"),
	}

	if raw := os.Getenv("TRACEDIFF_MATCH_THRESHOLD"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid TRACEDIFF_MATCH_THRESHOLD %q: %w", raw, err)
		}
		if v <= 0 || v > 1 {
			return Config{}, fmt.Errorf("config: TRACEDIFF_MATCH_THRESHOLD %v out of range (0,1]", v)
		}
		cfg.MatchThreshold = v
	}

	if raw := os.Getenv("TRACEDIFF_MIN_PAIR_SCORE"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid TRACEDIFF_MIN_PAIR_SCORE %q: %w", raw, err)
		}
		if v < 0 || v > 1 {
			return Config{}, fmt.Errorf("config: TRACEDIFF_MIN_PAIR_SCORE %v out of range [0,1]", v)
		}
		cfg.MinPairScore = v
	}

	return cfg, nil
}

// StepProfile returns the step weight profile with config overrides applied.
func (c Config) StepProfile() align.Profile {
	return c.apply(align.StepProfile())
}

// SpanProfile returns the span weight profile with config overrides applied.
func (c Config) SpanProfile() align.Profile {
	return c.apply(align.SpanProfile())
}

func (c Config) apply(p align.Profile) align.Profile {
	p.MatchThreshold = c.MatchThreshold
	p.MinPairScore = c.MinPairScore
	return p
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

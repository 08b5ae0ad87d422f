/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML parsing of the "30m" string form.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// EngineSettings are the tunables of the scanner and cache layer.
type EngineSettings struct {
	MaxPartitions  int      `yaml:"maxPartitions"`
	FetchLimit     int32    `yaml:"fetchLimit"`
	PredicateTTL   Duration `yaml:"predicateTtl"`
	FreshTTL       Duration `yaml:"freshTtl"`
	MutePatternTTL Duration `yaml:"mutePatternTtl"`
}

// Config holds all configuration for the feed engine process. AWS settings
// come from the environment; engine settings from an optional YAML file.
type Config struct {
	AWSAccessKey string
	AWSSecretKey string
	AWSRegion    string
	FeedTable    string
	CacheTable   string

	Engine EngineSettings
}

// defaultEngineSettings mirrors feed.DefaultSettings.
func defaultEngineSettings() EngineSettings {
	return EngineSettings{
		MaxPartitions:  14,
		FetchLimit:     50,
		PredicateTTL:   Duration(60 * time.Minute),
		FreshTTL:       Duration(30 * time.Minute),
		MutePatternTTL: Duration(30 * time.Minute),
	}
}

// Load reads configuration from the environment (via .env when present) and,
// when settingsPath is non-empty, merges engine settings from a YAML file.
func Load(settingsPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	cfg := &Config{
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretKey: os.Getenv("AWS_SECRET_KEY"),
		AWSRegion:    os.Getenv("AWS_REGION"),
		FeedTable:    os.Getenv("AWS_FEED_TABLE"),
		CacheTable:   os.Getenv("AWS_CACHE_TABLE"),
		Engine:       defaultEngineSettings(),
	}

	if cfg.FeedTable == "" {
		return nil, fmt.Errorf("AWS_FEED_TABLE is required")
	}
	if cfg.CacheTable == "" {
		return nil, fmt.Errorf("AWS_CACHE_TABLE is required")
	}

	if settingsPath != "" {
		raw, err := os.ReadFile(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg.Engine); err != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", err)
		}
	}

	if cfg.Engine.MaxPartitions < 1 {
		return nil, fmt.Errorf("maxPartitions must be at least 1")
	}
	if cfg.Engine.FetchLimit < 1 {
		return nil, fmt.Errorf("fetchLimit must be at least 1")
	}

	return cfg, nil
}

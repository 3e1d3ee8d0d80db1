package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'govradar config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads config or exits with error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// expandPath expands ~ to home directory.
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

func (c *Config) expandPaths() error {
	var err error
	c.Database.Path, err = expandPath(c.Database.Path)
	return err
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	if c.Discovery.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("discovery.timeout_seconds must be at least 1"))
	}
	if c.Discovery.MinRawScore < 0 {
		errs = append(errs, errors.New("discovery.min_raw_score must not be negative"))
	}
	for _, s := range c.Discovery.Sources {
		if s.URL == "" {
			errs = append(errs, fmt.Errorf("discovery source %q has no url", s.Name))
		}
	}

	if c.RFP.RelevanceThreshold <= 0 {
		errs = append(errs, errors.New("rfp.relevance_threshold must be positive"))
	}
	for _, p := range c.RFP.Portals {
		if p.URL == "" {
			errs = append(errs, fmt.Errorf("rfp portal %q has no url", p.Name))
		}
	}

	if c.Scoring.NormalizeDivisor <= 0 {
		errs = append(errs, errors.New("scoring.normalize_divisor must be positive"))
	}

	if c.AI.SemanticEnabled {
		if c.AI.SemanticPort < 1 || c.AI.SemanticPort > 65535 {
			errs = append(errs, errors.New("ai.semantic_port must be between 1 and 65535"))
		}
	}
	if c.AI.LLMEnabled && c.AI.LLMModel == "" {
		errs = append(errs, errors.New("ai.llm_model is required when ai.llm_enabled is set"))
	}

	if c.Schedule.Cron != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(c.Schedule.Cron); err != nil {
			errs = append(errs, fmt.Errorf("schedule.cron is not a valid cron expression: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsureDirectories creates the directories the database needs.
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func joinHostPort(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}

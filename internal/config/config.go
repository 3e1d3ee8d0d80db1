package config

import "time"

// Config represents the application configuration.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Discovery DiscoveryConfig `toml:"discovery"`
	RFP       RFPConfig       `toml:"rfp"`
	Scoring   ScoringConfig   `toml:"scoring"`
	AI        AIConfig        `toml:"ai"`
	Schedule  ScheduleConfig  `toml:"schedule"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// Source is one news site or feed to scan.
type Source struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// DiscoveryConfig contains news discovery settings.
type DiscoveryConfig struct {
	Sources        []Source `toml:"sources"`
	State          string   `toml:"state"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	// MinRawScore is the raw keyword score an article must reach before an
	// opportunity is created from it.
	MinRawScore float64 `toml:"min_raw_score"`
}

// Timeout returns the per-request fetch timeout.
func (d DiscoveryConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// Portal is one procurement portal to scan for solicitations.
type Portal struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// RFPConfig contains solicitation discovery settings.
type RFPConfig struct {
	Portals            []Portal `toml:"portals"`
	RelevanceThreshold float64  `toml:"relevance_threshold"`
}

// ScoringConfig contains scoring engine settings.
type ScoringConfig struct {
	// NormalizeDivisor is the raw keyword score that maps to a normalized
	// 100. Changing it shifts every keyword score; leave it alone unless
	// the vocabulary changes substantially.
	NormalizeDivisor float64 `toml:"normalize_divisor"`
}

// AIConfig contains optional supplementary scoring settings.
type AIConfig struct {
	// Semantic points at the embedding-similarity scoring service.
	SemanticEnabled bool   `toml:"semantic_enabled"`
	SemanticHost    string `toml:"semantic_host"`
	SemanticPort    int    `toml:"semantic_port"`

	// LLM scoring via the Anthropic API. The key is read from the
	// ANTHROPIC_API_KEY environment variable.
	LLMEnabled bool   `toml:"llm_enabled"`
	LLMModel   string `toml:"llm_model"`
}

// ScheduleConfig contains the background discovery schedule.
type ScheduleConfig struct {
	// Cron is a standard 5-field cron expression.
	Cron string `toml:"cron"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/govradar/govradar.db",
		},
		Discovery: DiscoveryConfig{
			Sources: []Source{
				{Name: "Florida Politics", URL: "https://floridapolitics.com"},
				{Name: "Tampa Bay Times", URL: "https://www.tampabay.com/news/"},
				{Name: "Miami Herald", URL: "https://www.miamiherald.com/news/local/"},
			},
			State:          "FL",
			TimeoutSeconds: 30,
			MinRawScore:    10,
		},
		RFP: RFPConfig{
			Portals: []Portal{
				{Name: "MFMP Advertisements", URL: "https://vendor.myfloridamarketplace.com/search/advertisements"},
				{Name: "DMS Procurement", URL: "https://www.dms.myflorida.com/business_operations/state_purchasing/vendor_resources/current_solicitations"},
			},
			RelevanceThreshold: 2.0,
		},
		Scoring: ScoringConfig{
			NormalizeDivisor: 25,
		},
		AI: AIConfig{
			SemanticEnabled: false,
			SemanticHost:    "http://localhost",
			SemanticPort:    8731,
			LLMEnabled:      false,
			LLMModel:        "claude-sonnet-4-5-20250929",
		},
		Schedule: ScheduleConfig{
			Cron: "0 6 * * *",
		},
	}
}

// SemanticURL returns the full URL for the semantic scoring service.
func (c *Config) SemanticURL() string {
	return joinHostPort(c.AI.SemanticHost, c.AI.SemanticPort)
}

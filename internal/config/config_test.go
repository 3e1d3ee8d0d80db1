package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
	if cfg.Schedule.Cron != "0 6 * * *" {
		t.Errorf("Cron = %q", cfg.Schedule.Cron)
	}
	if cfg.Scoring.NormalizeDivisor != 25 {
		t.Errorf("NormalizeDivisor = %v, want 25", cfg.Scoring.NormalizeDivisor)
	}
	if cfg.RFP.RelevanceThreshold != 2.0 {
		t.Errorf("RelevanceThreshold = %v, want 2.0", cfg.RFP.RelevanceThreshold)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	content := `
[database]
path = "` + filepath.Join(tmpDir, "radar.db") + `"

[discovery]
state = "FL"
timeout_seconds = 10
min_raw_score = 15

[[discovery.sources]]
name = "Local Paper"
url = "https://example.com/news"

[rfp]
relevance_threshold = 3.0

[schedule]
cron = "30 7 * * 1"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Discovery.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.Discovery.TimeoutSeconds)
	}
	if cfg.Discovery.MinRawScore != 15 {
		t.Errorf("MinRawScore = %v, want 15", cfg.Discovery.MinRawScore)
	}
	if len(cfg.Discovery.Sources) != 1 || cfg.Discovery.Sources[0].Name != "Local Paper" {
		t.Errorf("Sources = %+v", cfg.Discovery.Sources)
	}
	if cfg.RFP.RelevanceThreshold != 3.0 {
		t.Errorf("RelevanceThreshold = %v, want 3.0", cfg.RFP.RelevanceThreshold)
	}
	if cfg.Schedule.Cron != "30 7 * * 1" {
		t.Errorf("Cron = %q", cfg.Schedule.Cron)
	}

	// unset sections keep their defaults
	if cfg.Scoring.NormalizeDivisor != 25 {
		t.Errorf("NormalizeDivisor = %v, want default 25", cfg.Scoring.NormalizeDivisor)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "govradar config init") {
		t.Errorf("error does not point at config init: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Discovery.TimeoutSeconds = 0 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "negative min raw score",
			mutate:  func(c *Config) { c.Discovery.MinRawScore = -1 },
			wantErr: "min_raw_score",
		},
		{
			name:    "source without url",
			mutate:  func(c *Config) { c.Discovery.Sources = []Source{{Name: "broken"}} },
			wantErr: "has no url",
		},
		{
			name:    "zero relevance threshold",
			mutate:  func(c *Config) { c.RFP.RelevanceThreshold = 0 },
			wantErr: "relevance_threshold",
		},
		{
			name:    "bad cron",
			mutate:  func(c *Config) { c.Schedule.Cron = "not a cron" },
			wantErr: "schedule.cron",
		},
		{
			name: "bad semantic port",
			mutate: func(c *Config) {
				c.AI.SemanticEnabled = true
				c.AI.SemanticPort = 0
			},
			wantErr: "semantic_port",
		},
		{
			name: "llm without model",
			mutate: func(c *Config) {
				c.AI.LLMEnabled = true
				c.AI.LLMModel = ""
			},
			wantErr: "llm_model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandPath("~/.local/share/govradar/govradar.db")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	want := filepath.Join(home, ".local/share/govradar/govradar.db")
	if got != want {
		t.Errorf("expandPath = %q, want %q", got, want)
	}

	got, err = expandPath("/absolute/path.db")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != "/absolute/path.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestSemanticURL(t *testing.T) {
	cfg := Default()
	cfg.AI.SemanticHost = "http://localhost"
	cfg.AI.SemanticPort = 8731
	if got := cfg.SemanticURL(); got != "http://localhost:8731" {
		t.Errorf("SemanticURL = %q", got)
	}
}

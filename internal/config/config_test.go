package config

import (
	"testing"

	"github.com/nur-run/nur/internal/nurfile"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Output.Prefix != "none" {
		t.Fatalf("default prefix = %q, want none", cfg.Output.Prefix)
	}
	if cfg.Output.Style != "streamed" {
		t.Fatalf("default style = %q, want streamed", cfg.Output.Style)
	}
}

func TestValidate_NormalizesCase(t *testing.T) {
	cfg := New()
	cfg.Output.Prefix = "  ALIGNED  "
	cfg.Output.Style = "Grouped"
	cfg.Output.ConsoleFormat = "NDJSON"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Output.Prefix != "aligned" {
		t.Fatalf("Prefix = %q, want aligned", cfg.Output.Prefix)
	}
	if cfg.Output.Style != "grouped" {
		t.Fatalf("Style = %q, want grouped", cfg.Output.Style)
	}
	if cfg.Output.ConsoleFormat != "ndjson" {
		t.Fatalf("ConsoleFormat = %q, want ndjson", cfg.Output.ConsoleFormat)
	}
}

func TestValidate_RejectsUnknownEnumValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"prefix", func(c *Config) { c.Output.Prefix = "bogus" }},
		{"style", func(c *Config) { c.Output.Style = "bogus" }},
		{"console-format", func(c *Config) { c.Output.ConsoleFormat = "bogus" }},
		{"file", func(c *Config) { c.Target.File = "" }},
		{"concurrency", func(c *Config) { c.Runtime.Concurrency = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() returned nil error, want one")
			}
		})
	}
}

func TestOutputOptions_OverlaysFileDefaults(t *testing.T) {
	cfg := New()
	cfg.Output.Prefix = "aligned"
	cfg.Output.Style = "grouped"
	cfg.Output.OnlyOnFailure = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}

	file := nurfile.DefaultOutputOptions()
	got := cfg.OutputOptions(file)

	if got.Prefix != nurfile.Aligned {
		t.Fatalf("Prefix = %v, want Aligned", got.Prefix)
	}
	if got.Style != nurfile.Grouped {
		t.Fatalf("Style = %v, want Grouped", got.Style)
	}
	if !got.Grouped.OnlyOnFailure {
		t.Fatalf("Grouped.OnlyOnFailure = false, want true")
	}
	if got.Grouped.Separator != file.Grouped.Separator {
		t.Fatalf("Separator overlay mismatch: got %q want %q", got.Grouped.Separator, file.Grouped.Separator)
	}
}

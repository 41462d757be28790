package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"AUDIOLABEL_CATEGORIES", "AUDIOLABEL_ANNOTATIONS_DIR", "AUDIOLABEL_SAMPLE_RATE",
	"AUDIOLABEL_DECODER", "AUDIOLABEL_OUTPUT_RATE", "AUDIOLABEL_DATA_DIR",
	"AUDIOLABEL_STEP_SECONDS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Categories != "categories.json" {
		t.Errorf("Categories = %q, want categories.json", cfg.Categories)
	}
	if cfg.AnnotationsDir != "./annotations" {
		t.Errorf("AnnotationsDir = %q, want ./annotations", cfg.AnnotationsDir)
	}
	if cfg.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", cfg.SampleRate)
	}
	if cfg.Decoder != "native" {
		t.Errorf("Decoder = %q, want native", cfg.Decoder)
	}
	if cfg.OutputRate != 44100 {
		t.Errorf("OutputRate = %d, want 44100", cfg.OutputRate)
	}
	if cfg.StepSeconds != 0.1 {
		t.Errorf("StepSeconds = %v, want 0.1", cfg.StepSeconds)
	}
	if cfg.Resume {
		t.Error("Resume should default to false")
	}
	if cfg.HistoryPath() != filepath.Join(".audiolabel", "history.sqlite") {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath())
	}
}

func TestLoadFromFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	yamlText := `categories: labels/urban.json
annotations_dir: out
sample_rate: 16000
decoder: ffmpeg
resume: true
`
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte(yamlText), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUDIOLABEL_ANNOTATIONS_DIR", "/tmp/labels")
	t.Setenv("AUDIOLABEL_OUTPUT_RATE", "48000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Categories != "labels/urban.json" {
		t.Errorf("Categories = %q, want file value", cfg.Categories)
	}
	if cfg.AnnotationsDir != "/tmp/labels" {
		t.Errorf("AnnotationsDir = %q, want env override", cfg.AnnotationsDir)
	}
	if cfg.SampleRate != 16000 || cfg.Decoder != "ffmpeg" || !cfg.Resume {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.OutputRate != 48000 {
		t.Errorf("OutputRate = %d, want env override 48000", cfg.OutputRate)
	}
	if cfg.StepSeconds != 0.1 {
		t.Errorf("StepSeconds = %v, want default kept for unset key", cfg.StepSeconds)
	}
}

func TestEnvIntInvalidFallsBack(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("AUDIOLABEL_SAMPLE_RATE", "fast")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want fallback 22050", cfg.SampleRate)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for explicit missing config")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("sample_rate: [not, an, int"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative sample rate", func(c *Config) { c.SampleRate = -1 }},
		{"zero output rate", func(c *Config) { c.OutputRate = 0 }},
		{"zero step", func(c *Config) { c.StepSeconds = 0 }},
		{"unknown decoder", func(c *Config) { c.Decoder = "sox" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFile)
	cfg := DefaultConfig()
	cfg.Decoder = "ffmpeg"
	cfg.StepSeconds = 0.25

	if err := WriteConfig(path, cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	loaded, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

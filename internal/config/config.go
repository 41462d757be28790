// Package config handles reading audiolabel.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jwulff/audiolabel/internal/audio"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "audiolabel.yaml"

// Config is the top-level structure for audiolabel.yaml.
type Config struct {
	Categories     string  `yaml:"categories"`      // JSON array of labels
	AnnotationsDir string  `yaml:"annotations_dir"` // where <stem>.json files go
	SampleRate     int     `yaml:"sample_rate"`     // decode rate, 0 = native
	Decoder        string  `yaml:"decoder"`         // "native" | "ffmpeg"
	OutputRate     int     `yaml:"output_rate"`     // speaker rate
	DataDir        string  `yaml:"data_dir"`        // history db and event log
	StepSeconds    float64 `yaml:"step_seconds"`    // selection nudge size
	Resume         bool    `yaml:"resume"`          // reload saved labels on open
}

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Categories:     "categories.json",
		AnnotationsDir: "./annotations",
		SampleRate:     audio.DefaultSampleRate,
		Decoder:        audio.DecoderNative,
		OutputRate:     audio.DefaultOutputRate,
		DataDir:        ".audiolabel",
		StepSeconds:    0.1,
	}
}

// ReadConfig reads a YAML config file, layering it over the defaults.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// WriteConfig writes cfg to path, creating parent directories.
func WriteConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Load resolves the effective configuration: defaults, then the YAML file,
// then AUDIOLABEL_* environment variables. An empty path means DefaultFile,
// which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg, err := ReadConfig(path)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if c.SampleRate < 0 {
		return fmt.Errorf("sample_rate must not be negative, got %d", c.SampleRate)
	}
	if c.OutputRate <= 0 {
		return fmt.Errorf("output_rate must be positive, got %d", c.OutputRate)
	}
	if c.StepSeconds <= 0 {
		return fmt.Errorf("step_seconds must be positive, got %v", c.StepSeconds)
	}
	if _, err := audio.NewDecoder(c.Decoder, c.SampleRate); err != nil {
		return err
	}
	return nil
}

// HistoryPath returns the save history database path.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.sqlite")
}

func applyEnv(c *Config) {
	c.Categories = envStr("AUDIOLABEL_CATEGORIES", c.Categories)
	c.AnnotationsDir = envStr("AUDIOLABEL_ANNOTATIONS_DIR", c.AnnotationsDir)
	c.SampleRate = envInt("AUDIOLABEL_SAMPLE_RATE", c.SampleRate)
	c.Decoder = envStr("AUDIOLABEL_DECODER", c.Decoder)
	c.OutputRate = envInt("AUDIOLABEL_OUTPUT_RATE", c.OutputRate)
	c.DataDir = envStr("AUDIOLABEL_DATA_DIR", c.DataDir)
	c.StepSeconds = envFloat("AUDIOLABEL_STEP_SECONDS", c.StepSeconds)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

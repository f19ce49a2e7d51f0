// Package config loads application settings from YAML or JSON files
// with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a setting is absent from the file.
const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = 0.2
	DefaultMaxOutputTokens = 2000
	DefaultTimeout         = 5 * time.Minute
	DefaultOutputDir       = "output"
)

// EnvAPIKey is the environment variable holding the Gemini API key.
const EnvAPIKey = "GEMINI_API_KEY"

// Duration wraps time.Duration so config files can express timeouts as
// duration strings ("90s", "5m") or as bare numbers of seconds.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return d.set(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d *Duration) set(raw any) error {
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	case float64:
		*d = Duration(time.Duration(v * float64(time.Second)))
	default:
		return fmt.Errorf("invalid duration value of type %T", raw)
	}
	return nil
}

// Config holds the application settings.
type Config struct {
	// Model is the generation model name.
	Model string `yaml:"model" json:"model"`
	// Temperature is the sampling temperature.
	Temperature float64 `yaml:"temperature" json:"temperature"`
	// MaxOutputTokens caps the response length per call.
	MaxOutputTokens int `yaml:"max_output_tokens" json:"max_output_tokens"`
	// Timeout bounds the whole pipeline run.
	Timeout Duration `yaml:"timeout" json:"timeout"`
	// OutputDir is where artifacts are written.
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	// JournalPath, when set, enables SQLite journaling at this path.
	JournalPath string `yaml:"journal_path" json:"journal_path"`

	// APIKey comes from the environment, never from the file.
	APIKey string `yaml:"-" json:"-"`
}

// Default returns the configuration with all defaults applied and the
// API key read from the environment.
func Default() Config {
	return Config{
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
		Timeout:         Duration(DefaultTimeout),
		OutputDir:       DefaultOutputDir,
		APIKey:          os.Getenv(EnvAPIKey),
	}
}

// Load reads settings from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json. Missing settings keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config file extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

// HasAPIKey reports whether a Gemini API key is configured.
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c Config) validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be positive, got %d", c.MaxOutputTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	return nil
}

package internal

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML values like "5s" or "2m"
type Duration time.Duration

// UnmarshalYAML parses a duration string
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

// MarshalYAML renders the duration back to its string form
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the optional per-install agent configuration
type Config struct {
	Endpoint         string   `yaml:"endpoint"`
	RequestTimeout   Duration `yaml:"request_timeout"`
	DetectTimeout    Duration `yaml:"detect_timeout"`
	FallbackIdentity string   `yaml:"fallback_identity"`
	ExtraSelectors   []string `yaml:"extra_selectors,omitempty"`
	ViewportWidth    int      `yaml:"viewport_width"`
	ViewportHeight   int      `yaml:"viewport_height"`
}

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() Config {
	return Config{
		Endpoint:         DefaultEndpoint,
		RequestTimeout:   Duration(30 * time.Second),
		DetectTimeout:    Duration(DefaultDetectTimeout),
		FallbackIdentity: FallbackIdentity,
		ViewportWidth:    DefaultViewport.Width,
		ViewportHeight:   DefaultViewport.Height,
	}
}

// LoadConfig reads the config file at path, falling back to defaults for
// a missing file and for any field left unset
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = Duration(30 * time.Second)
	}
	if cfg.DetectTimeout == 0 {
		cfg.DetectTimeout = Duration(DefaultDetectTimeout)
	}
	if cfg.FallbackIdentity == "" {
		cfg.FallbackIdentity = FallbackIdentity
	}
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = DefaultViewport.Width
	}
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = DefaultViewport.Height
	}

	return cfg, nil
}

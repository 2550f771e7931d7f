package tune

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the process-wide autotuning configuration. Family is the only
// setting the dispatch core reads; Seed and LogLevel serve the benchmark
// harness and logging setup.
type Config struct {
	Family   string `yaml:"family"`    // "none" (default), "random", "gaussian"
	Seed     int64  `yaml:"seed"`      // master seed for reproducible runs
	LogLevel string `yaml:"log_level"` // logrus level name (default "info")
}

// DefaultConfig returns a disabled-autotuning configuration.
func DefaultConfig() Config {
	return Config{Family: "none", Seed: 42, LogLevel: "info"}
}

// LoadConfig reads a yaml Config from path and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate returns an error if the config names an unknown family.
func (c Config) Validate() error {
	if _, err := ParseFamily(c.Family); err != nil {
		return err
	}
	return nil
}

// BanditFamily returns the parsed Family. Call Validate first; an invalid
// name resolves to FamilyNone here.
func (c Config) BanditFamily() Family {
	f, err := ParseFamily(c.Family)
	if err != nil {
		return FamilyNone
	}
	return f
}

// Apply installs the configured family on d.
func (c Config) Apply(d *Dispatcher) {
	d.SetActiveFamily(c.BanditFamily())
}

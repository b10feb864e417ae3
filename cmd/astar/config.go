package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const defaultMaxExpansions = 1000000

// Config holds the CLI settings. A YAML file may supply any of them; flags
// given on the command line take precedence.
type Config struct {
	Problem         string `yaml:"problem,omitempty"`
	MaxExpansions   int    `yaml:"max_expansions,omitempty" validate:"gte=0"`
	Unbounded       bool   `yaml:"unbounded,omitempty"`
	InvariantChecks bool   `yaml:"invariant_checks,omitempty"`
	ProgressEvery   int    `yaml:"progress_every,omitempty" validate:"gte=0"`
	Verbose         bool   `yaml:"verbose,omitempty"`
	JSON            bool   `yaml:"json,omitempty"`
	Metrics         bool   `yaml:"metrics,omitempty"`
	Trace           bool   `yaml:"trace,omitempty"`
	Archive         string `yaml:"archive,omitempty" validate:"omitempty,archive"`
	LogLevel        string `yaml:"log_level,omitempty" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MaxExpansions: defaultMaxExpansions,
		ProgressEvery: 1,
		LogLevel:      "info",
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Problem != "" {
		c.Problem = source.Problem
	}
	if source.MaxExpansions > 0 {
		c.MaxExpansions = source.MaxExpansions
	}
	if source.ProgressEvery > 0 {
		c.ProgressEvery = source.ProgressEvery
	}
	if source.Archive != "" {
		c.Archive = source.Archive
	}
	if source.LogLevel != "" {
		c.LogLevel = source.LogLevel
	}

	c.Unbounded = c.Unbounded || source.Unbounded
	c.InvariantChecks = c.InvariantChecks || source.InvariantChecks
	c.Verbose = c.Verbose || source.Verbose
	c.JSON = c.JSON || source.JSON
	c.Metrics = c.Metrics || source.Metrics
	c.Trace = c.Trace || source.Trace
}

// Budget returns the expansion limit handed to the engine; 0 means none.
func (c *Config) Budget() int {
	if c.Unbounded {
		return 0
	}
	return c.MaxExpansions
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("archive", validateArchive)
}

// validateArchive accepts "memory", "sqlite:<path>" and "mysql:<dsn>".
func validateArchive(fl validator.FieldLevel) bool {
	_, _, err := parseArchive(fl.Field().String())
	return err == nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// parseArchive splits an archive setting into its kind and location.
func parseArchive(setting string) (kind, location string, err error) {
	if setting == "memory" {
		return "memory", "", nil
	}
	kind, location, ok := strings.Cut(setting, ":")
	if !ok || location == "" || (kind != "sqlite" && kind != "mysql") {
		return "", "", fmt.Errorf("archive %q: expected memory, sqlite:<path> or mysql:<dsn>", setting)
	}
	return kind, location, nil
}

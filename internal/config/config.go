package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonv/internal/parser"
	"github.com/mcncl/jsonv/internal/transform"
)

// Config represents the complete configuration for jsonv
type Config struct {
	InputFormat string          `yaml:"input_format"`
	Output      OutputConfig    `yaml:"output"`
	Transform   TransformConfig `yaml:"transform"`
	Dev         DevConfig       `yaml:"dev"`
}

// OutputConfig controls how values are printed
type OutputConfig struct {
	// Indent is repeated once per nesting level. Empty selects the
	// canonical single line encoding.
	Indent          string `yaml:"indent"`
	TrailingNewline bool   `yaml:"trailing_newline"`
}

// TransformConfig controls the rewrites applied before printing
type TransformConfig struct {
	SortArrays  bool              `yaml:"sort_arrays"`
	KeyCase     string            `yaml:"key_case"`
	KeyMappings map[string]string `yaml:"key_mappings"`
	DropKeys    []KeyPattern      `yaml:"drop_keys"`
}

// KeyPattern matches object keys by regular expression
type KeyPattern struct {
	Pattern string `yaml:"pattern"`
	Comment string `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		InputFormat: string(parser.FormatJSON),
		Output: OutputConfig{
			Indent:          "",
			TrailingNewline: true,
		},
		Transform: TransformConfig{
			SortArrays:  false,
			KeyMappings: make(map[string]string),
			DropKeys:    []KeyPattern{},
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonv.yml", ".jsonv.yaml", "jsonv.yml", "jsonv.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Transform.DropKeys {
		p := &c.Transform.DropKeys[i]
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			return fmt.Errorf("invalid drop_keys pattern '%s': %w", p.Pattern, err)
		}
		p.regex = regex
	}
	return nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	if _, err := parser.ParseFormat(c.InputFormat); err != nil {
		return fmt.Errorf("invalid input_format: %w", err)
	}
	if _, err := transform.KeyCase(c.Transform.KeyCase); err != nil {
		return fmt.Errorf("invalid key_case: %w", err)
	}
	return nil
}

// MatchesKey checks if this pattern matches the given object key
func (kp *KeyPattern) MatchesKey(key string) bool {
	if kp.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(kp.Pattern)
		if err != nil {
			return false
		}
		kp.regex = regex
	}
	return kp.regex.MatchString(key)
}

// ShouldDropKey checks if members with this key are removed from the output
func (c *Config) ShouldDropKey(key string) bool {
	for i := range c.Transform.DropKeys {
		if c.Transform.DropKeys[i].MatchesKey(key) {
			return true
		}
	}
	return false
}

// TransformOptions converts the transform section into transform.Options.
func (c *Config) TransformOptions() transform.Options {
	opts := transform.Options{
		KeyCase:     c.Transform.KeyCase,
		KeyMappings: c.Transform.KeyMappings,
		SortArrays:  c.Transform.SortArrays,
	}
	if len(c.Transform.DropKeys) > 0 {
		opts.Drop = c.ShouldDropKey
	}
	return opts
}

// Overrides holds command line values. Empty strings and false booleans
// leave the loaded configuration alone.
type Overrides struct {
	InputFormat string
	Indent      string
	KeyCase     string
	SortArrays  bool
	Debug       bool
}

// MergeConfigs merges CLI overrides into a base config
// Non-empty values from override take precedence over base values
func MergeConfigs(base *Config, override Overrides) *Config {
	merged := *base // Start with a copy of base

	if override.InputFormat != "" {
		merged.InputFormat = override.InputFormat
	}
	if override.Indent != "" {
		merged.Output.Indent = override.Indent
	}
	if override.KeyCase != "" {
		merged.Transform.KeyCase = override.KeyCase
	}

	// Boolean flags can only switch a feature on
	if override.SortArrays {
		merged.Transform.SortArrays = true
	}
	if override.Debug {
		merged.Dev.Debug = true
	}

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults
func LoadConfigWithCLI(configPath string, override Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	merged := MergeConfigs(cfg, override)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

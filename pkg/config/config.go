// Package config loads helper configuration from YAML or TOML files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/spicery/span-tokenizer/pkg/analyzer"
	"github.com/spicery/span-tokenizer/pkg/helpers"
	"github.com/spicery/span-tokenizer/pkg/tokenizer"
)

// Format is a configuration file syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Config represents the structure of a configuration file.
type Config struct {
	Helpers   []string      `yaml:"helpers,omitempty" toml:"helpers,omitempty"`
	Patterns  []PatternRule `yaml:"patterns,omitempty" toml:"patterns,omitempty"`
	Normalize string        `yaml:"normalize,omitempty" toml:"normalize,omitempty"`
}

// PatternRule defines a regular-expression helper. Kind defaults to Name.
type PatternRule struct {
	Name    string `yaml:"name" toml:"name"`
	Kind    string `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Pattern string `yaml:"pattern" toml:"pattern"`
}

var normalForms = map[string]norm.Form{
	"nfc":  norm.NFC,
	"nfd":  norm.NFD,
	"nfkc": norm.NFKC,
	"nfkd": norm.NFKD,
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Helpers: analyzer.DefaultHelperNames()}
}

// FormatForPath picks TOML for .toml files and YAML otherwise.
func FormatForPath(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		return TOML
	}
	return YAML
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case YAML, "yml":
		return YAML, nil
	case TOML:
		return TOML, nil
	}
	return "", fmt.Errorf("unsupported config format %q (must be yaml or toml)", name)
}

// Load reads and parses a configuration file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filename, err)
	}

	cfg, err := Parse(data, FormatForPath(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes configuration data in the given format.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case TOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Marshal encodes the configuration in the given format.
func (c *Config) Marshal(format Format) ([]byte, error) {
	if format == TOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	return data, nil
}

// Apply builds a helper registry and helper order from the configuration.
// Pattern helpers are registered after the built-ins. When no order is
// given, the default order is used with pattern helpers appended.
// Returns an error for duplicate or unknown helper names.
func Apply(c *Config) (*helpers.Registry, []string, error) {
	registry := helpers.Builtin()

	var patternNames []string
	for _, rule := range c.Patterns {
		if rule.Name == "" {
			return nil, nil, fmt.Errorf("pattern helper with pattern %q has no name", rule.Pattern)
		}
		kind := rule.Kind
		if kind == "" {
			kind = rule.Name
		}
		helper, err := helpers.NewPatternHelper(rule.Name, tokenizer.Kind(kind), rule.Pattern)
		if err != nil {
			return nil, nil, err
		}
		if err := registry.Register(helper); err != nil {
			return nil, nil, err
		}
		patternNames = append(patternNames, rule.Name)
	}

	order := c.Helpers
	if len(order) == 0 {
		order = append(analyzer.DefaultHelperNames(), patternNames...)
	}
	for _, name := range order {
		if _, err := registry.Lookup(name); err != nil {
			return nil, nil, err
		}
	}

	return registry, append([]string(nil), order...), nil
}

// Analyzer builds an analyzer from the configuration.
func (c *Config) Analyzer() (*analyzer.Analyzer, error) {
	registry, order, err := Apply(c)
	if err != nil {
		return nil, err
	}
	return analyzer.NewAnalyzerWithHelpers(registry, order), nil
}

// NormalizeText applies the configured Unicode normalization form, if any.
func (c *Config) NormalizeText(text string) (string, error) {
	name := strings.ToLower(c.Normalize)
	if name == "" || name == "none" {
		return text, nil
	}
	form, ok := normalForms[name]
	if !ok {
		return "", fmt.Errorf("unknown normalization form %q", c.Normalize)
	}
	return form.String(text), nil
}

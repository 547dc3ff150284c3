// Package config holds the options and rule lists for refile.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidFormat   ConfigErrorType = "INVALID_FORMAT"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred while loading options or rules.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		if e.Message != "" {
			return fmt.Sprintf("rules file not readable: %s (%s)", e.Path, e.Message)
		}
		return fmt.Sprintf("rules file not found: %s", e.Path)
	case InvalidFormat:
		return fmt.Sprintf("invalid rules file %s: %s", e.Path, e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// ColorMode controls colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Rule is one find/replace pair. Find is a regular expression matched
// against the filename, Replace is its replacement template.
type Rule struct {
	Find    string `json:"find" yaml:"find"`
	Replace string `json:"replace" yaml:"replace"`
}

// Options is the structured form of the command line.
type Options struct {
	Pattern     Rule     // Required first rule.
	Patterns    []Rule   // Additional rules, applied after Pattern in order.
	Global      bool     // Replace every match instead of the first one.
	Files       []string // Candidates, processed in the given order.
	Force       bool
	Interactive bool
	DryRun      bool
	Verbose     bool
	IgnoreDir   bool
	Color       ColorMode
	Debug       bool
}

// DefaultOptions returns Options with zero flags and automatic color.
func DefaultOptions() Options {
	return Options{Color: ColorAuto}
}

// Rules returns the full ordered rule list: Pattern followed by Patterns.
func (o *Options) Rules() []Rule {
	rules := make([]Rule, 0, 1+len(o.Patterns))
	rules = append(rules, o.Pattern)
	rules = append(rules, o.Patterns...)
	return rules
}

// RulesFile is the on-disk form of an additional rule list.
type RulesFile struct {
	Global bool   `json:"global,omitempty" yaml:"global,omitempty"`
	Rules  []Rule `json:"rules" yaml:"rules"`
}

// Validate checks that the rules file has at least one usable rule.
func (r *RulesFile) Validate() error {
	if len(r.Rules) == 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "rules must contain at least one rule",
		}
	}
	return nil
}

// ApplyRulesFile appends the rules from rf after the command-line rules.
// A rules file can enable Global but never disable it.
func (o *Options) ApplyRulesFile(rf *RulesFile) {
	if rf == nil {
		return
	}
	o.Patterns = append(o.Patterns, rf.Rules...)
	if rf.Global {
		o.Global = true
	}
}

// LoadRules reads a rules file. Files ending in .json are decoded as JSON,
// everything else as YAML.
func LoadRules(filePath string) (*RulesFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{
				Type: FileNotFound,
				Path: filePath,
			}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	var rf RulesFile
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		err = json.Unmarshal(data, &rf)
	} else {
		err = yaml.Unmarshal(data, &rf)
	}
	if err != nil {
		return nil, &ConfigError{
			Type:    InvalidFormat,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	if err := rf.Validate(); err != nil {
		return nil, err
	}

	return &rf, nil
}

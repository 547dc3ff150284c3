package config

import (
	"path/filepath"
	"strconv"
)

// ValidationSeverity represents the severity of a validation issue.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ConfigValidationError represents a single validation issue.
type ConfigValidationError struct {
	Field    string             // Option with the issue (e.g., "files[2]")
	Message  string             // Human-readable description
	Severity ValidationSeverity // "error" or "warning"
}

func (e ConfigValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ConfigValidationError
	Warnings []ConfigValidationError
	Valid    bool // True if no errors (warnings OK)
}

// ValidateOptions checks the options for problems the rename engine does not
// itself reject. Force together with Interactive is left to the engine.
func ValidateOptions(opts *Options) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ConfigValidationError{},
		Warnings: []ConfigValidationError{},
		Valid:    true,
	}

	var all []ConfigValidationError
	all = append(all, ValidateColor(opts)...)
	all = append(all, ValidateFiles(opts)...)
	all = append(all, ValidateRules(opts)...)
	all = append(all, ValidateModes(opts)...)

	for _, issue := range all {
		if issue.Severity == SeverityError {
			result.Errors = append(result.Errors, issue)
		} else {
			result.Warnings = append(result.Warnings, issue)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateColor checks that the color mode is one of auto, always or never.
func ValidateColor(opts *Options) []ConfigValidationError {
	switch opts.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return []ConfigValidationError{{
		Field:    "color",
		Message:  "invalid color mode: \"" + string(opts.Color) + "\". Must be \"auto\", \"always\", or \"never\"",
		Severity: SeverityError,
	}}
}

// ValidateFiles warns about paths listed more than once. Such paths are still
// processed once per occurrence.
func ValidateFiles(opts *Options) []ConfigValidationError {
	var issues []ConfigValidationError

	seen := make(map[string]int)
	for i, f := range opts.Files {
		clean := filepath.Clean(f)
		if first, ok := seen[clean]; ok {
			issues = append(issues, ConfigValidationError{
				Field:    formatField("files", i),
				Message:  "\"" + f + "\" is listed again (first at index " + strconv.Itoa(first) + ")",
				Severity: SeverityWarning,
			})
			continue
		}
		seen[clean] = i
	}

	return issues
}

// ValidateRules warns about rules that are exact repeats of an earlier rule.
func ValidateRules(opts *Options) []ConfigValidationError {
	var issues []ConfigValidationError

	seen := make(map[Rule]int)
	for i, rule := range opts.Rules() {
		if first, ok := seen[rule]; ok {
			issues = append(issues, ConfigValidationError{
				Field:    formatField("rules", i),
				Message:  "rule \"" + rule.Find + "\" -> \"" + rule.Replace + "\" repeats rule at index " + strconv.Itoa(first),
				Severity: SeverityWarning,
			})
			continue
		}
		seen[rule] = i
	}

	return issues
}

// ValidateModes warns about flag combinations that are legal but surprising.
func ValidateModes(opts *Options) []ConfigValidationError {
	var issues []ConfigValidationError

	if opts.DryRun && opts.Interactive {
		issues = append(issues, ConfigValidationError{
			Field:    "interactive",
			Message:  "overwrite prompts are still shown during a dry run",
			Severity: SeverityWarning,
		})
	}
	return issues
}

// formatField creates a field reference string for validation issues.
func formatField(name string, index int) string {
	return name + "[" + strconv.Itoa(index) + "]"
}

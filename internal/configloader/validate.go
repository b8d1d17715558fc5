package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/vault"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if !cfg.Title.IsValid() {
		fail("title", cfg.Title, "invalid title mode %q; must be one of: none, alias, property", cfg.Title)
	}
	if !cfg.Indent.IsValid() {
		fail("indent", cfg.Indent, "invalid indent %q; must be one of: tab, spaces", cfg.Indent)
	}
	if !cfg.BlankLines.IsValid() {
		fail("blank_lines", cfg.BlankLines, "invalid blank line policy %q; must be one of: keep, remove, trim", cfg.BlankLines)
	}
	if cfg.Jobs < 0 {
		fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if _, ok := fsutil.ParseBackupMode(cfg.Backups.Mode); !ok {
		fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	switch {
	case cfg.Separator == "":
		fail("separator", cfg.Separator, "separator must not be empty")
	case strings.ContainsAny(cfg.Separator, `/\`):
		fail("separator", cfg.Separator, "separator must not contain a path separator")
	case strings.Contains(cfg.Separator, "."):
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "separator",
			Value:   cfg.Separator,
			Message: fmt.Sprintf("separator %q contains a dot; hierarchy levels become ambiguous in page names", cfg.Separator),
		})
	}

	for i, pattern := range cfg.Ignore {
		if err := vault.ValidatePatterns([]string{pattern}); err != nil {
			fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

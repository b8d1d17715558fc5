package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdoutline/pkg/config"
)

// envVarPrefix is the prefix for all mdoutline environment variables.
const envVarPrefix = "MDOUTLINE_"

// envVar binds one environment variable to a config field.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(description string, set func(*config.Config, string)) envVar {
	return envVar{
		description: description,
		apply: func(cfg *config.Config, value string) error {
			set(cfg, value)
			return nil
		},
	}
}

func boolVar(description string, set func(*config.Config, bool)) envVar {
	return envVar{
		description: description,
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
			}
			set(cfg, b)
			return nil
		},
	}
}

// envVars maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"REMOVE_FRONTMATTER": boolVar("Drop frontmatter instead of keeping it: true or false",
		func(c *config.Config, v bool) { c.RemoveFrontmatter = v }),
	"TITLE": stringVar("Title handling: none, alias or property",
		func(c *config.Config, v string) { c.Title = config.TitleMode(v) }),
	"INDENT": stringVar("Indent unit: tab or spaces",
		func(c *config.Config, v string) { c.Indent = config.IndentStyle(v) }),
	"BLANK_LINES": {
		description: "Blank line policy: keep, remove or trim",
		apply: func(c *config.Config, v string) error {
			policy, ok := config.ParseBlankLinePolicy(v)
			if !ok {
				return fmt.Errorf("invalid blank line policy %q", v)
			}
			c.BlankLines = policy
			return nil
		},
	},
	"DETECT_LANGUAGE": boolVar("Tag indented code blocks with a detected language: true or false",
		func(c *config.Config, v bool) { c.DetectLanguage = v }),
	"SEPARATOR": stringVar("Replacement for dots in note file names",
		func(c *config.Config, v string) { c.Separator = v }),
	"IGNORE": stringVar("Comma-separated list of ignore patterns",
		func(c *config.Config, v string) { c.Ignore = parseSliceValue(v) }),
	"BACKUPS_ENABLED": boolVar("Back up output pages before overwriting: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	"BACKUPS_MODE": stringVar("Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDOUTLINE_ (e.g., MDOUTLINE_TITLE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		vars[envVarPrefix+suffix] = v.description
	}
	return vars
}

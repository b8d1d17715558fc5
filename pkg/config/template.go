package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every option uncommented with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var content []byte
	if opts.Full {
		content = fullTemplate()
	} else {
		content = minimalTemplate()
	}

	if opts.Format == "json" {
		return templateToJSON(content)
	}

	return content, nil
}

func minimalTemplate() []byte {
	return []byte(`# mdoutline configuration
# See: https://github.com/yaklabco/mdoutline

# Where the frontmatter title goes: none, alias, or property
title: none

# Indent unit of the produced outline: tab or spaces
indent: tab

# Blank lines: keep, remove, or trim
blank_lines: trim

# Drop frontmatter instead of keeping it as a code block
# remove_frontmatter: false

# Tag converted indented code blocks with a detected language
# detect_language: false

# Replacement for dots in note file names (a.b.md -> a___b.md)
# separator: "___"

# Vault entries to ignore (glob patterns)
# ignore:
#   - "root.md"
#   - "scratch.*"
`)
}

func fullTemplate() []byte {
	return []byte(`# mdoutline configuration - Full Template
# See: https://github.com/yaklabco/mdoutline
#
# This template includes all available options with their default settings.

# Drop frontmatter instead of keeping it as a code block
remove_frontmatter: false

# Where the frontmatter title goes:
#   none     - keep the title line inside the frontmatter block
#   alias    - add an alias:: page property
#   property - add a title:: page property (titles must be unique)
title: none

# Indent unit of the produced outline: tab or spaces
indent: tab

# Blank lines:
#   keep   - every blank line becomes an empty bullet
#   remove - blank lines are dropped
#   trim   - no blank lines after headings, at most one elsewhere
blank_lines: trim

# Tag converted indented code blocks with a detected language
detect_language: false

# Replacement for dots in note file names (a.b.md -> a___b.md)
separator: "___"

# Vault entries to ignore (glob patterns)
ignore: []

# Backup configuration for overwritten output files
backups:
  enabled: false
  mode: sidecar
`)
}

// templateToJSON converts a YAML template to JSON, dropping comments.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var data map[string]any
	if err := yaml.Unmarshal(yamlContent, &data); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	return buf.Bytes(), nil
}

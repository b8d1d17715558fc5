// Package configloader resolves the mdoutline configuration.
// It discovers config files in XDG locations and the project tree, merges
// them in precedence order, applies MDOUTLINE_* environment overrides and
// validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdoutline/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// CLISet names the CLI fields the user actually set. Only those override
	// lower layers, so an unset boolean flag cannot clear a file setting.
	CLISet FieldSet
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDOUTLINE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdoutline.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdoutline/config.yaml)
//  6. System config (/etc/mdoutline/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		fileCfg, set, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg, set)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig, opts.CLISet)
		// CLI-only fields always come from the flags.
		cfg.Jobs = opts.CLIConfig.Jobs
		cfg.DryRun = opts.CLIConfig.DryRun
		cfg.Yes = opts.CLIConfig.Yes
		cfg.Verify = opts.CLIConfig.Verify
		cfg.NoBackups = opts.CLIConfig.NoBackups
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file and reports which
// top-level keys the file set.
func loadConfigFile(path string) (*config.Config, FieldSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &config.Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, nil, fmt.Errorf("parse YAML: %w", err)
	}

	var keys map[string]any
	if err := yaml.Unmarshal(content, &keys); err != nil {
		return nil, nil, fmt.Errorf("parse YAML: %w", err)
	}

	set := make(FieldSet, len(keys))
	for key, value := range keys {
		set[key] = true
		if key == "backups" {
			if nested, ok := value.(map[string]any); ok {
				for sub := range nested {
					set["backups."+sub] = true
				}
			}
		}
	}

	return cfg, set, nil
}

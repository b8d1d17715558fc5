package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdoutline/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Title != config.TitleNone {
		t.Errorf("expected title %q, got %q", config.TitleNone, cfg.Title)
	}
	if cfg.Indent != config.IndentTab {
		t.Errorf("expected indent %q, got %q", config.IndentTab, cfg.Indent)
	}
	if cfg.Separator != config.DefaultSeparator {
		t.Errorf("expected separator %q, got %q", config.DefaultSeparator, cfg.Separator)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mdoutline.yml"), `
title: alias
indent: spaces
blank_lines: remove
ignore:
  - "scratch.**"
`)

	// Project config is found from a subdirectory.
	sub := filepath.Join(tmpDir, "notes")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Title != config.TitleAlias {
		t.Errorf("expected title alias, got %q", cfg.Title)
	}
	if cfg.Indent != config.IndentSpaces {
		t.Errorf("expected indent spaces, got %q", cfg.Indent)
	}
	if cfg.BlankLines != config.BlankRemove {
		t.Errorf("expected blank_lines remove, got %q", cfg.BlankLines)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "scratch.**" {
		t.Errorf("unexpected ignore %v", cfg.Ignore)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mdoutline.yml"), "remove_frontmatter: true\nseparator: \"__\"\n")
	custom := filepath.Join(tmpDir, "custom.yml")
	writeConfig(t, custom, "remove_frontmatter: false\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.RemoveFrontmatter {
		t.Error("explicit config should turn remove_frontmatter back off")
	}
	if result.Config.Separator != "__" {
		t.Errorf("expected separator from project config, got %q", result.Config.Separator)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != custom {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mdoutline.yml"), "title: alias\ndetect_language: true\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Title:  config.TitleProperty,
		Jobs:   8,
		DryRun: true,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Title != config.TitleProperty {
		t.Errorf("expected title property (CLI override), got %q", cfg.Title)
	}
	if !cfg.DetectLanguage {
		t.Error("unset CLI flag must not clear detect_language")
	}
	if cfg.Jobs != 8 || !cfg.DryRun {
		t.Errorf("CLI-only fields not applied: jobs=%d dry_run=%v", cfg.Jobs, cfg.DryRun)
	}
}

func TestLoad_CLISetClearsBoolean(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mdoutline.yml"), "detect_language: true\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{DetectLanguage: false}
	opts.CLISet = FieldSet{"detect_language": true}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.DetectLanguage {
		t.Error("explicit CLI false should override config file")
	}
}

//nolint:paralleltest // Uses t.Setenv.
func TestLoad_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mdoutline.yml"), "title: alias\n")

	t.Setenv("MDOUTLINE_TITLE", "property")
	t.Setenv("MDOUTLINE_BLANK_LINES", "all")
	t.Setenv("MDOUTLINE_IGNORE", "root.schema.yml, drafts.**")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Title != config.TitleProperty {
		t.Errorf("expected env title property, got %q", cfg.Title)
	}
	if cfg.BlankLines != config.BlankRemove {
		t.Errorf("expected env blank lines remove, got %q", cfg.BlankLines)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "drafts.**" {
		t.Errorf("unexpected ignore %v", cfg.Ignore)
	}
}

//nolint:paralleltest // Uses t.Setenv.
func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("MDOUTLINE_DETECT_LANGUAGE", "maybe")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "MDOUTLINE_DETECT_LANGUAGE") {
		t.Fatalf("expected error naming the variable, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"title", "title: heading\n", "title"},
		{"indent", "indent: two\n", "indent"},
		{"blank lines", "blank_lines: some\n", "blank_lines"},
		{"backup mode", "backups:\n  mode: cloud\n", "backups.mode"},
		{"separator", "separator: \"a/b\"\n", "separator"},
		{"ignore", "ignore:\n  - \"[\"\n", "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, filepath.Join(tmpDir, ".mdoutline.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %q", err, tt.field)
			}
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".mdoutline.yml"), "title: alias\n")

	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("search crossed the VCS root: %q", path)
	}
}

func TestValidate_SeparatorWithDotWarns(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Separator = "."

	result := Validate(cfg)
	if !result.Valid() {
		t.Fatalf("unexpected errors: %v", result.AllMessages())
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", result.AllMessages())
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for _, name := range []string{"MDOUTLINE_TITLE", "MDOUTLINE_INDENT", "MDOUTLINE_IGNORE"} {
		if vars[name] == "" {
			t.Errorf("missing description for %s", name)
		}
	}
}

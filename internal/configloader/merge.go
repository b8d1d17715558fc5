package configloader

import "github.com/yaklabco/mdoutline/pkg/config"

// FieldSet records which configuration keys a layer set explicitly, keyed by
// their YAML names ("title", "backups.mode", ...).
type FieldSet map[string]bool

// merge combines two configurations, with override taking precedence over base.
//   - Fields named in set are always taken from override, so a layer can turn
//     a boolean back off.
//   - Other scalars are taken from override when non-zero.
//   - Slices: override replaces base entirely if override is non-nil.
//
// CLI-only fields are not merged.
func merge(base, override *config.Config, set FieldSet) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if set["remove_frontmatter"] || override.RemoveFrontmatter {
		result.RemoveFrontmatter = override.RemoveFrontmatter
	}
	if set["detect_language"] || override.DetectLanguage {
		result.DetectLanguage = override.DetectLanguage
	}
	if set["backups.enabled"] || override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	if override.Title != "" {
		result.Title = override.Title
	}
	if override.Indent != "" {
		result.Indent = override.Indent
	}
	if override.BlankLines != "" {
		result.BlankLines = override.BlankLines
	}
	if override.Separator != "" {
		result.Separator = override.Separator
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return &result
}

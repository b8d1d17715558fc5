// Package config defines core configuration types for mdoutline.
// These types are pure data structures with no external dependencies on config loaders.
package config

// TitleMode controls what happens to the frontmatter title of a note.
type TitleMode string

const (
	// TitleNone leaves the title line in the frontmatter block.
	TitleNone TitleMode = "none"
	// TitleAlias diverts the title into an alias:: page property.
	TitleAlias TitleMode = "alias"
	// TitleProperty diverts the title into a title:: page property.
	// Requires that no two notes in the vault share a title.
	TitleProperty TitleMode = "property"
)

// IsValid returns true if the title mode is known.
func (m TitleMode) IsValid() bool {
	switch m {
	case TitleNone, TitleAlias, TitleProperty:
		return true
	default:
		return false
	}
}

// IndentStyle selects the indent unit of the produced outline.
type IndentStyle string

const (
	IndentTab    IndentStyle = "tab"
	IndentSpaces IndentStyle = "spaces"
)

// Unit returns the literal indent unit for the style.
// Unknown styles fall back to a tab.
func (s IndentStyle) Unit() string {
	if s == IndentSpaces {
		return "    "
	}
	return "\t"
}

// IsValid returns true if the indent style is known.
func (s IndentStyle) IsValid() bool {
	return s == IndentTab || s == IndentSpaces
}

// BlankLinePolicy controls how blank body lines are carried into the outline.
type BlankLinePolicy string

const (
	// BlankKeep emits a placeholder bullet for every blank line.
	BlankKeep BlankLinePolicy = "keep"
	// BlankRemove drops every blank line.
	BlankRemove BlankLinePolicy = "remove"
	// BlankTrim drops blank lines after headings and collapses runs to one placeholder.
	BlankTrim BlankLinePolicy = "trim"
)

// IsValid returns true if the policy is known.
func (p BlankLinePolicy) IsValid() bool {
	switch p {
	case BlankKeep, BlankRemove, BlankTrim:
		return true
	default:
		return false
	}
}

// ParseBlankLinePolicy accepts both the policy names and the historic
// --remove-empty-lines spellings (none, all, trim).
func ParseBlankLinePolicy(value string) (BlankLinePolicy, bool) {
	switch value {
	case "none", string(BlankKeep):
		return BlankKeep, true
	case "all", string(BlankRemove):
		return BlankRemove, true
	case string(BlankTrim):
		return BlankTrim, true
	default:
		return "", false
	}
}

// DefaultSeparator replaces dots in note file names (a.b.c.md -> a___b___c.md).
const DefaultSeparator = "___"

// BackupsConfig controls backup behavior when overwriting output files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for mdoutline.
type Config struct {
	// RemoveFrontmatter drops the frontmatter instead of keeping it as a code block.
	RemoveFrontmatter bool `mapstructure:"remove_frontmatter" yaml:"remove_frontmatter"`

	// Title selects where the frontmatter title goes.
	Title TitleMode `mapstructure:"title" yaml:"title"`

	// Indent selects the indent unit ("tab" or "spaces").
	Indent IndentStyle `mapstructure:"indent" yaml:"indent"`

	// BlankLines selects the blank line policy ("keep", "remove" or "trim").
	BlankLines BlankLinePolicy `mapstructure:"blank_lines" yaml:"blank_lines"`

	// DetectLanguage tags converted indented code blocks with a detected language.
	DetectLanguage bool `mapstructure:"detect_language" yaml:"detect_language"`

	// Separator replaces dots in note file names.
	Separator string `mapstructure:"separator" yaml:"separator"`

	// Ignore contains glob patterns for vault entries to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Backups configures backup behavior when overwriting output files.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// DryRun shows what would be written without touching the output directory.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Yes answers yes to all prompts.
	Yes bool `mapstructure:"-" yaml:"-"`

	// Verify checks every produced outline with a Markdown parser.
	Verify bool `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		RemoveFrontmatter: false,
		Title:             TitleNone,
		Indent:            IndentTab,
		BlankLines:        BlankTrim,
		Separator:         DefaultSeparator,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Jobs: 0, // 0 means one worker per CPU
	}
}

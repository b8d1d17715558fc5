package outline

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/langdetect"
)

// Warning messages reported by ConvertDocument.
const (
	WarnInvalidUTF8             = "invalid UTF-8 replaced"
	WarnUnterminatedFrontmatter = "frontmatter is never closed"
	WarnUnterminatedFence       = "fenced code block is never closed"
)

// Options controls a single conversion.
type Options struct {
	RemoveFrontmatter bool
	Title             config.TitleMode
	Indent            config.IndentStyle
	BlankLines        config.BlankLinePolicy

	// DetectLanguage tags converted indented code blocks with a language.
	DetectLanguage bool
}

// DefaultOptions keeps frontmatter, leaves titles alone, indents with tabs
// and trims blank lines.
func DefaultOptions() Options {
	return Options{
		Title:      config.TitleNone,
		Indent:     config.IndentTab,
		BlankLines: config.BlankTrim,
	}
}

// OptionsFromConfig extracts the conversion options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		RemoveFrontmatter: cfg.RemoveFrontmatter,
		Title:             cfg.Title,
		Indent:            cfg.Indent,
		BlankLines:        cfg.BlankLines,
		DetectLanguage:    cfg.DetectLanguage,
	}
}

// Result is a converted document.
type Result struct {
	Text     string
	Warnings []string

	// Blocks is the number of outline nodes the body produced, list items
	// included.
	Blocks int
}

// Convert turns a Markdown document into an outline document.
func Convert(text string, opts Options) string {
	return ConvertDocument(text, opts).Text
}

// ConvertDocument turns a Markdown document into an outline document and
// reports anything that was handled best-effort.
func ConvertDocument(text string, opts Options) Result {
	var res Result

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
		res.Warnings = append(res.Warnings, WarnInvalidUTF8)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		buf     Buffer
		fm      = NewFrontmatter(opts)
		tracker = NewTracker(opts.BlankLines)
		emitter = NewEmitter(opts.Indent)
		code    = codeBlock{open: -1}
	)

	emit := func(lines []Line) {
		for _, line := range lines {
			if line.StartsNode() {
				res.Blocks++
			}
			line.Text = rewrite(line.Text, line.Rewrite)
			idx := buf.Append(emitter.Render(line))
			if opts.DetectLanguage {
				code.track(line, idx, &buf)
			}
		}
	}

	for _, raw := range SplitLines(text) {
		if fm.Consume(raw, &buf) {
			continue
		}
		emit(tracker.Feed(raw))
	}

	if fm.Unterminated() {
		res.Warnings = append(res.Warnings, WarnUnterminatedFrontmatter)
	}
	if tracker.State().Stack.Top() == BlockFencedCode {
		res.Warnings = append(res.Warnings, WarnUnterminatedFence)
	}
	if closing := tracker.Finish(); len(closing) > 0 {
		buf.EnsureNewline()
		emit(closing)
	}

	res.Text = buf.String()
	return res
}

// SplitLines splits text after every newline. The last element has no
// newline when text does not end with one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func rewrite(text string, mode Rewrite) string {
	switch mode {
	case RewriteLinks:
		return ConvertLinks(text)
	case RewriteAll:
		return FixAssetPaths(ConvertLinks(ConvertEmbeds(text)))
	default:
		return text
	}
}

// codeBlock collects a converted indented code block so its opening fence
// can be tagged once the block is complete.
type codeBlock struct {
	open    int
	content strings.Builder
}

func (c *codeBlock) track(line Line, idx int, buf *Buffer) {
	switch line.Mark {
	case MarkCodeOpen:
		c.open = idx
		c.content.Reset()
	case MarkCode:
		c.content.WriteString(line.Text)
	case MarkCodeClose:
		if c.open < 0 {
			return
		}
		if lang := langdetect.InfoString([]byte(c.content.String())); lang != "" {
			opening := buf.Line(c.open)
			buf.Set(c.open, strings.TrimSuffix(opening, "\n")+lang+"\n")
		}
		c.open = -1
	case MarkNone:
	}
}

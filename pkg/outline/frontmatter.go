package outline

import (
	"strings"

	"github.com/yaklabco/mdoutline/pkg/config"
)

const (
	frontmatterDelimiter = "---"
	titleKey             = "title:"
)

// Frontmatter consumes the leading metadata block of a document. It is fed
// every line until it reports a line as not consumed.
type Frontmatter struct {
	retain bool
	title  config.TitleMode

	checked bool
	open    bool
	done    bool
}

// NewFrontmatter returns an extractor configured by opts.
func NewFrontmatter(opts Options) *Frontmatter {
	return &Frontmatter{
		retain: !opts.RemoveFrontmatter,
		title:  opts.Title,
	}
}

// Consume handles raw if it belongs to the frontmatter region, writing any
// output to buf. It reports whether the line was consumed.
func (f *Frontmatter) Consume(raw string, buf *Buffer) bool {
	if f.done {
		return false
	}

	if !f.checked {
		f.checked = true
		if !isDelimiter(raw) {
			f.done = true
			return false
		}
		f.open = true
		if f.retain {
			buf.Append("- ```\n")
			buf.Append("  " + raw)
		}
		return true
	}

	if isDelimiter(raw) {
		f.open = false
		f.done = true
		if f.retain {
			buf.Append("  " + raw)
			buf.EnsureNewline()
			buf.Append("  ```\n")
		}
		return true
	}

	if strings.HasPrefix(raw, titleKey) {
		switch f.title {
		case config.TitleAlias:
			buf.InsertFront("alias:: " + titleValue(raw) + "\n")
			return true
		case config.TitleProperty:
			buf.InsertFront("title:: " + titleValue(raw) + "\n")
			return true
		}
	}

	if f.retain {
		buf.Append("  " + raw)
	}
	return true
}

// Unterminated reports whether the region was opened and never closed.
func (f *Frontmatter) Unterminated() bool {
	return f.open
}

func isDelimiter(raw string) bool {
	return strings.TrimRight(raw, " \t\r\n") == frontmatterDelimiter
}

// titleValue extracts the value of a "title:" line, without surrounding
// whitespace or matching quotes.
func titleValue(raw string) string {
	return Unquote(strings.TrimSpace(raw[len(titleKey):]))
}

// Unquote strips one pair of matching single or double quotes.
func Unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

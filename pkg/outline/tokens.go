package outline

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled token grammars are read-only.
var (
	embedToken = regexp.MustCompile(`!\[\[.+?\]\]`)
	linkToken  = regexp.MustCompile(`\[\[.+?\]\]`)
	assetImage = regexp.MustCompile(`(!\[.*?\]\()(/assets/)(.*?\))`)
)

// ConvertEmbeds rewrites ![[a.b.note#anchor]] to {{embed [[a/b/note]]}}.
// The anchor is dropped because partial transclusion has no equivalent.
func ConvertEmbeds(line string) string {
	if !strings.Contains(line, "![[") {
		return line
	}
	return RewriteProtected(line, embedToken, func(token string) string {
		inner := token[len("![[") : len(token)-len("]]")]
		return "{{embed [[" + refTarget(inner) + "]]}}"
	})
}

// ConvertLinks rewrites [[alias|a.b.note#anchor]] to [[a/b/note]].
// Alias and anchor are dropped.
func ConvertLinks(line string) string {
	if !strings.Contains(line, "[[") {
		return line
	}
	return RewriteProtected(line, linkToken, func(token string) string {
		inner := token[len("[[") : len(token)-len("]]")]
		if idx := strings.LastIndexByte(inner, '|'); idx >= 0 && idx+1 < len(inner) {
			inner = inner[idx+1:]
		}
		return "[[" + refTarget(inner) + "]]"
	})
}

// FixAssetPaths points image references at /assets/ to ../assets/ since
// converted pages live one directory below the graph root.
func FixAssetPaths(line string) string {
	if !strings.Contains(line, "assets") {
		return line
	}
	return RewriteProtected(line, assetImage, func(token string) string {
		return assetImage.ReplaceAllString(token, "${1}../assets/${3}")
	})
}

// refTarget strips an anchor from a note reference and turns the dotted
// hierarchy into a slash separated page name. An anchor needs at least one
// character of target before it, so [[#top]] stays a same-page reference.
func refTarget(ref string) string {
	if len(ref) > 1 {
		if idx := strings.IndexByte(ref[1:], '#'); idx >= 0 {
			ref = ref[:idx+1]
		}
	}
	return strings.ReplaceAll(ref, ".", "/")
}

// Package langdetect guesses the language of an untagged code block so the
// converted fence can carry an info string.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language could be determined.
const Text = "text"

// minYAMLPairs is the number of key: value lines that make a block YAML.
const minYAMLPairs = 2

// classifierCandidates limits the enry classifier to languages that
// commonly show up in notes.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// fenceNames maps enry language names to the names used in fence info
// strings where the two differ.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fenceNames = map[string]string{
	"Shell":      "bash",
	"C++":        "cpp",
	"Dockerfile": "dockerfile",
}

// signature is a cheap textual marker that identifies a language more
// reliably than the classifier on short snippets.
type signature struct {
	lang  string
	match func(code, trimmed string) bool
}

//nolint:gochecknoglobals // Read-only signature table, checked in order.
var signatures = []signature{
	{"go", func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{"python", func(code, trimmed string) bool {
		if strings.Contains(code, "def ") && strings.Contains(code, "):") {
			return true
		}
		if strings.Contains(code, "__name__") {
			return true
		}
		return strings.HasPrefix(trimmed, "from ") && strings.Contains(code, " import ")
	}},
	{"html", func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html")
	}},
	{"json", func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `":`)
	}},
	{"dockerfile", func(code, trimmed string) bool {
		return strings.HasPrefix(trimmed, "FROM ") && strings.Contains(code, "\nRUN ")
	}},
	{"sql", func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(code, _ string) bool {
		return strings.Contains(code, "fn main()") || strings.Contains(code, "let mut ")
	}},
	{"yaml", func(code, _ string) bool {
		return yamlPairs(code) >= minYAMLPairs
	}},
}

// Detect returns the language of a code snippet, or Text.
func Detect(content []byte) string {
	code := string(content)
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceName(lang)
	}

	for _, sig := range signatures {
		if sig.match(code, trimmed) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceName(lang)
	}

	return Text
}

// InfoString returns the fence info string for content, empty when the
// language is unknown.
func InfoString(content []byte) string {
	lang := Detect(content)
	if lang == Text {
		return ""
	}
	return lang
}

func fenceName(lang string) string {
	if name, ok := fenceNames[lang]; ok {
		return name
	}
	return strings.ToLower(lang)
}

// yamlPairs counts lines shaped like "key: value" or "- item".
func yamlPairs(code string) int {
	count := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "- "):
			count++
		case strings.Contains(line, ": ") && !strings.ContainsAny(line, "({;") && !strings.HasPrefix(line, `"`):
			count++
		}
	}
	return count
}

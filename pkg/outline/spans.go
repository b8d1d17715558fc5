package outline

import (
	"regexp"
	"strings"
)

// Span is a run of a line that is either inline code or ordinary text.
// Code spans include their backtick delimiters.
type Span struct {
	Text string
	Code bool
}

// SplitSpans splits line into alternating text and inline code spans.
//
// A code span opens with a run of N backticks and closes at the next run of
// exactly N backticks. A run without a matching closer is literal text.
// Concatenating the Text of all spans yields line unchanged.
func SplitSpans(line string) []Span {
	var spans []Span

	start := 0
	for idx := 0; idx < len(line); {
		if line[idx] != '`' {
			idx++
			continue
		}

		run := backtickRun(line, idx)
		closer := findCloser(line, idx+run, run)
		if closer < 0 {
			idx += run
			continue
		}

		if start < idx {
			spans = append(spans, Span{Text: line[start:idx]})
		}
		end := closer + run
		spans = append(spans, Span{Text: line[idx:end], Code: true})
		idx = end
		start = end
	}

	if start < len(line) {
		spans = append(spans, Span{Text: line[start:]})
	}

	return spans
}

// backtickRun returns the length of the backtick run starting at idx.
func backtickRun(line string, idx int) int {
	n := 0
	for idx+n < len(line) && line[idx+n] == '`' {
		n++
	}
	return n
}

// findCloser returns the offset of the next backtick run of exactly size
// bytes at or after from, or -1.
func findCloser(line string, from, size int) int {
	for idx := from; idx < len(line); {
		if line[idx] != '`' {
			idx++
			continue
		}
		run := backtickRun(line, idx)
		if run == size {
			return idx
		}
		idx += run
	}
	return -1
}

// RewriteProtected replaces every match of grammar found outside inline code
// spans with replace(match). Code spans are copied untouched and the spans
// are recombined in their original order.
func RewriteProtected(line string, grammar *regexp.Regexp, replace func(token string) string) string {
	spans := SplitSpans(line)

	var builder strings.Builder
	builder.Grow(len(line))

	for _, span := range spans {
		if span.Code {
			builder.WriteString(span.Text)
			continue
		}
		builder.WriteString(grammar.ReplaceAllStringFunc(span.Text, replace))
	}

	return builder.String()
}

package outline_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdoutline/pkg/outline"
)

func TestSplitSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []outline.Span
	}{
		{
			name: "no code",
			line: "plain [[a.b]] text",
			want: []outline.Span{{Text: "plain [[a.b]] text"}},
		},
		{
			name: "single backtick span",
			line: "a `b` c",
			want: []outline.Span{{Text: "a "}, {Text: "`b`", Code: true}, {Text: " c"}},
		},
		{
			name: "double backtick span holds single backtick",
			line: "x ``a ` b`` y",
			want: []outline.Span{{Text: "x "}, {Text: "``a ` b``", Code: true}, {Text: " y"}},
		},
		{
			name: "unmatched run is text",
			line: "a `b c",
			want: []outline.Span{{Text: "a `b c"}},
		},
		{
			name: "span at start and end",
			line: "`a`b`c`",
			want: []outline.Span{{Text: "`a`", Code: true}, {Text: "b"}, {Text: "`c`", Code: true}},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, outline.SplitSpans(tt.line))
		})
	}
}

func TestSplitSpans_Reconstructs(t *testing.T) {
	t.Parallel()

	lines := []string{
		"a `b` c ``d`` e `",
		"```not a fence``` but code",
		"`` ` `` and `x`",
		"no code at all\n",
	}

	for _, line := range lines {
		var sb strings.Builder
		for _, span := range outline.SplitSpans(line) {
			sb.WriteString(span.Text)
		}
		assert.Equal(t, line, sb.String())
	}
}

func TestRewriteProtected(t *testing.T) {
	t.Parallel()

	word := regexp.MustCompile(`foo`)
	upper := func(s string) string { return strings.ToUpper(s) }

	got := outline.RewriteProtected("foo `foo` foo ``foo`` foo", word, upper)
	assert.Equal(t, "FOO `foo` FOO ``foo`` FOO", got)
}

package outline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/outline"
)

func opts(mutate func(*outline.Options)) outline.Options {
	o := outline.DefaultOptions()
	if mutate != nil {
		mutate(&o)
	}
	return o
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  outline.Options
		want  string
	}{
		{
			name:  "heading and paragraph",
			input: "# Title\n\nSome *text* with [[a.b.c]] and ![[x.y#^1]].\n",
			opts:  opts(nil),
			want:  "- # Title\n\t- Some *text* with [[a/b/c]] and {{embed [[x/y]]}}.\n",
		},
		{
			name:  "empty document",
			input: "",
			opts:  opts(nil),
			want:  "",
		},
		{
			name:  "unterminated last line",
			input: "text",
			opts:  opts(nil),
			want:  "- text",
		},
		{
			name:  "crlf",
			input: "# H\r\n\r\ntext\r\n",
			opts:  opts(nil),
			want:  "- # H\n\t- text\n",
		},
		{
			name:  "four space indent",
			input: "# H\n\ntext\n",
			opts:  opts(func(o *outline.Options) { o.Indent = config.IndentSpaces }),
			want:  "- # H\n    - text\n",
		},
		{
			name:  "subheading with separate paragraph",
			input: "## Sub\n\ntext\n",
			opts:  opts(nil),
			want:  "\t- ## Sub\n\t\t- text\n",
		},
		{
			name:  "line right after heading continues it",
			input: "## Sub\ntext\n",
			opts:  opts(nil),
			want:  "\t- ## Sub\n\t\t  text\n",
		},
		{
			name:  "frontmatter retained as code block",
			input: "---\nid: 1\ntitle: Note\n---\nbody\n",
			opts:  opts(nil),
			want:  "- ```\n  ---\n  id: 1\n  title: Note\n  ---\n  ```\n- body\n",
		},
		{
			name:  "frontmatter removed",
			input: "---\nid: 1\ntitle: Note\n---\nbody\n",
			opts:  opts(func(o *outline.Options) { o.RemoveFrontmatter = true }),
			want:  "- body\n",
		},
		{
			name:  "title as alias",
			input: "---\nid: 1\ntitle: Note\n---\nbody\n",
			opts: opts(func(o *outline.Options) {
				o.RemoveFrontmatter = true
				o.Title = config.TitleAlias
			}),
			want: "alias:: Note\n- body\n",
		},
		{
			name:  "title as property with retained frontmatter",
			input: "---\nid: 1\ntitle: \"My Note\"\n---\nbody\n",
			opts:  opts(func(o *outline.Options) { o.Title = config.TitleProperty }),
			want:  "title:: My Note\n- ```\n  ---\n  id: 1\n  ---\n  ```\n- body\n",
		},
		{
			name:  "delimiter with trailing text is not frontmatter",
			input: "--- x\n",
			opts:  opts(nil),
			want:  "- --- x\n",
		},
		{
			name:  "unterminated frontmatter runs to the end",
			input: "---\nid: 1\nbody\n",
			opts:  opts(nil),
			want:  "- ```\n  ---\n  id: 1\n  body\n",
		},
		{
			name:  "closing delimiter without newline",
			input: "---\nid: 1\n---",
			opts:  opts(nil),
			want:  "- ```\n  ---\n  id: 1\n  ---\n  ```\n",
		},
		{
			name:  "fenced code after paragraph",
			input: "text\n```go\nx := 1\n```\n",
			opts:  opts(nil),
			want:  "- text\n  ```go\n  x := 1\n  ```\n",
		},
		{
			name:  "fenced code under heading",
			input: "# H\n```\n# not a heading [[a.b]]\n```\n",
			opts:  opts(nil),
			want:  "- # H\n\t- ```\n\t  # not a heading [[a.b]]\n\t  ```\n",
		},
		{
			name:  "fenced code in list item",
			input: "# H\n- item [[a.b]]\n    ```\n    # x [[y.z]]\n    - not item\n    ```\n- next\n",
			opts:  opts(nil),
			want:  "- # H\n\t- item [[a/b]]\n\t    ```\n\t    # x [[y.z]]\n\t    - not item\n\t    ```\n\t- next\n",
		},
		{
			name:  "indented code",
			input: "para\n\n    code [[a.b]]\n\tmore\n",
			opts:  opts(nil),
			want:  "- para\n- \n- ```\n  code [[a.b]]\n  more\n  ```\n",
		},
		{
			name:  "indented code closed at end of document",
			input: "# H\n    x",
			opts:  opts(nil),
			want:  "- # H\n\t- ```\n\t  x\n\t  ```\n",
		},
		{
			name:  "language tag on indented code",
			input: "# H\n    package main\n",
			opts:  opts(func(o *outline.Options) { o.DetectLanguage = true }),
			want:  "- # H\n\t- ```go\n\t  package main\n\t  ```\n",
		},
		{
			name:  "blockquote",
			input: "> a [[x.y]]\n> b\n",
			opts:  opts(nil),
			want:  "- > a [[x/y]]\n  > b\n",
		},
		{
			name:  "horizontal rule",
			input: "para\n***\n",
			opts:  opts(nil),
			want:  "- para\n- ***\n",
		},
		{
			name:  "list markers normalised",
			input: "* a\n+ b\n    * c\n",
			opts:  opts(nil),
			want:  "- a\n- b\n    - c\n",
		},
		{
			name:  "inline code protected",
			input: "see `[[a.b]]` and [[c.d]] ![i](/assets/p.png) `![x](/assets/q.png)`\n",
			opts:  opts(nil),
			want:  "- see `[[a.b]]` and [[c/d]] ![i](../assets/p.png) `![x](/assets/q.png)`\n",
		},
		{
			name:  "headings convert links only",
			input: "# ![i](/assets/a.png) [[a.b]] ![[c.d#x]]\n",
			opts:  opts(nil),
			want:  "- # ![i](/assets/a.png) [[a/b]] ![[c/d]]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, outline.Convert(tt.input, tt.opts))
		})
	}
}

func TestConvert_BlankLinePolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		policy config.BlankLinePolicy
		want   string
	}{
		{"keep", "para\n\n\n\nnext\n", config.BlankKeep, "- para\n- \n- \n- \n- next\n"},
		{"remove", "para\n\n\n\nnext\n", config.BlankRemove, "- para\n- next\n"},
		{"trim", "para\n\n\n\nnext\n", config.BlankTrim, "- para\n- \n- next\n"},
		{"trim after heading", "# H\n\n\n\nnext\n", config.BlankTrim, "- # H\n\t- next\n"},
		{"keep after heading", "# H\n\n\n\nnext\n", config.BlankKeep, "- # H\n\t- \n\t- \n\t- \n\t- next\n"},
		{"leading blanks kept", "\n\nbody\n", config.BlankKeep, "- \n- \n- body\n"},
		{"leading blanks trimmed", "\n\nbody\n", config.BlankTrim, "- body\n"},
		{"leading blanks removed", "\n\nbody\n", config.BlankRemove, "- body\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := outline.Convert(tt.input, opts(func(o *outline.Options) { o.BlankLines = tt.policy }))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_LeadingBlanksAfterFrontmatter(t *testing.T) {
	t.Parallel()

	input := "---\na: 1\n---\n\n\nbody\n"

	keep := outline.Convert(input, opts(func(o *outline.Options) {
		o.RemoveFrontmatter = true
		o.BlankLines = config.BlankKeep
	}))
	assert.Equal(t, "- \n- \n- body\n", keep)

	trim := outline.Convert(input, opts(func(o *outline.Options) { o.RemoveFrontmatter = true }))
	assert.Equal(t, "- body\n", trim)
}

func TestConvert_FenceContentVerbatim(t *testing.T) {
	t.Parallel()

	content := []string{
		"# heading-like",
		"- bullet-like [[a.b]]",
		"> quote-like ![[x.y]]",
		"\tindented\twith tabs",
		"![img](/assets/a.png)",
		"",
	}
	input := "```\n" + strings.Join(content, "\n") + "\n```\n"

	got := outline.Convert(input, outline.DefaultOptions())
	lines := outline.SplitLines(got)

	for i, want := range content {
		assert.Equal(t, "  "+want+"\n", lines[i+1])
	}
}

func TestConvertDocument_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
		text  string
	}{
		{"clean", "# H\n", nil, "- # H\n"},
		{"invalid utf8", "a\xffb\n", []string{outline.WarnInvalidUTF8}, "- a�b\n"},
		{"open frontmatter", "---\nid: 1\n", []string{outline.WarnUnterminatedFrontmatter}, "- ```\n  ---\n  id: 1\n"},
		{"open fence", "```\ncode\n", []string{outline.WarnUnterminatedFence}, "- ```\n  code\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := outline.ConvertDocument(tt.input, outline.DefaultOptions())
			assert.Equal(t, tt.want, res.Warnings)
			assert.Equal(t, tt.text, res.Text)
		})
	}
}

func TestConvertDocument_Blocks(t *testing.T) {
	t.Parallel()

	res := outline.ConvertDocument("# H\n\ntext\nmore\n- a\n- b\n", outline.DefaultOptions())
	assert.Equal(t, 4, res.Blocks)
}

func TestConvert_HeadingDepthInvariant(t *testing.T) {
	t.Parallel()

	for level := 1; level <= 6; level++ {
		heading := strings.Repeat("#", level) + " H\n"

		joined := outline.SplitLines(outline.Convert(heading+"body\n", outline.DefaultOptions()))
		assert.Equal(t, strings.Repeat("\t", level-1)+"- "+heading, joined[0])
		assert.Equal(t, strings.Repeat("\t", level)+"  body\n", joined[1])

		separate := outline.SplitLines(outline.Convert(heading+"\nbody\n", outline.DefaultOptions()))
		assert.Equal(t, strings.Repeat("\t", level)+"- body\n", separate[1])
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.RemoveFrontmatter = true
	cfg.Title = config.TitleAlias
	cfg.Indent = config.IndentSpaces
	cfg.BlankLines = config.BlankKeep
	cfg.DetectLanguage = true

	assert.Equal(t, outline.Options{
		RemoveFrontmatter: true,
		Title:             config.TitleAlias,
		Indent:            config.IndentSpaces,
		BlankLines:        config.BlankKeep,
		DetectLanguage:    true,
	}, outline.OptionsFromConfig(cfg))

	assert.Equal(t, outline.DefaultOptions(), outline.OptionsFromConfig(nil))
}

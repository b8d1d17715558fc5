package outline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/outline"
)

func TestFrontmatter_Consume(t *testing.T) {
	t.Parallel()

	var buf outline.Buffer
	fm := outline.NewFrontmatter(outline.Options{Title: config.TitleProperty})

	assert.True(t, fm.Consume("---  \n", &buf))
	assert.True(t, fm.Consume("title: 'Quoted'\n", &buf))
	assert.True(t, fm.Unterminated())
	assert.True(t, fm.Consume("---\n", &buf))
	assert.False(t, fm.Unterminated())
	assert.False(t, fm.Consume("body\n", &buf))
	assert.False(t, fm.Consume("---\n", &buf), "a later delimiter belongs to the body")

	assert.Equal(t, "title:: Quoted\n- ```\n  ---  \n  ---\n  ```\n", buf.String())
}

func TestFrontmatter_NoRegion(t *testing.T) {
	t.Parallel()

	var buf outline.Buffer
	fm := outline.NewFrontmatter(outline.DefaultOptions())

	assert.False(t, fm.Consume("# Heading\n", &buf))
	assert.False(t, fm.Consume("---\n", &buf))
	assert.Zero(t, buf.Len())
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`"a b"`: "a b",
		`'a'`:   "a",
		`"a'`:   `"a'`,
		`"`:     `"`,
		`plain`: "plain",
		`""`:    "",
	}

	for in, want := range tests {
		assert.Equal(t, want, outline.Unquote(in), in)
	}
}

func TestBuffer(t *testing.T) {
	t.Parallel()

	var buf outline.Buffer
	first := buf.Append("- a")
	buf.EnsureNewline()
	buf.Append("- b\n")
	buf.InsertFront("two:: 2\n")
	buf.InsertFront("one:: 1\n")

	buf.Set(first, buf.Line(first)+"x\n")
	buf.Set(99, "ignored")

	assert.Equal(t, 4, buf.Len())
	assert.Equal(t, "one:: 1\ntwo:: 2\n- a\nx\n- b\n", buf.String())
}

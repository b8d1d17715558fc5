// Package verify parses produced outline documents with goldmark and reports
// content that would not end up inside a bullet.
package verify

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Flavor identifies the Markdown flavor used to parse outlines.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

//nolint:gochecknoglobals // Compiled pattern is read-only.
var propertyLine = regexp.MustCompile(`^[A-Za-z0-9_-]+:: `)

// Issue is a top-level block that is not part of the outline.
type Issue struct {
	// Line is 1-based; 0 when goldmark keeps no position for the block.
	Line int
	Kind string
}

func (i Issue) String() string {
	if i.Line == 0 {
		return fmt.Sprintf("top-level %s outside the outline", i.Kind)
	}
	return fmt.Sprintf("line %d: top-level %s outside the outline", i.Line, i.Kind)
}

// Report summarises the structure of one outline document.
type Report struct {
	// Items counts list items at any depth.
	Items int

	// Properties is true when the document starts with page properties.
	Properties bool

	Issues []Issue
}

// OK reports whether every block is inside the outline.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Verifier checks outline documents.
type Verifier struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a Verifier for flavor. Unknown flavors fall back to CommonMark.
func New(flavor string) *Verifier {
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}

	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return &Verifier{flavor: flavor, md: goldmark.New(opts...)}
}

// Flavor returns the configured Markdown flavor.
func (v *Verifier) Flavor() string {
	return v.flavor
}

// Check parses content and reports its outline structure.
func (v *Verifier) Check(ctx context.Context, content []byte) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("verify cancelled: %w", err)
	}

	doc := v.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	report := &Report{}

	first := true
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		leading := first
		first = false

		switch n := node.(type) {
		case *ast.List:
			report.Items += countItems(n)
			continue
		case *ast.Paragraph:
			if leading && isPropertyBlock(n, content) {
				report.Properties = true
				continue
			}
		}

		report.Issues = append(report.Issues, Issue{
			Line: lineOf(node, content),
			Kind: node.Kind().String(),
		})
	}

	return report, nil
}

func countItems(list ast.Node) int {
	count := 0
	_ = ast.Walk(list, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindListItem {
			count++
		}
		return ast.WalkContinue, nil
	})
	return count
}

// isPropertyBlock reports whether every line of p is a "key:: value" line.
func isPropertyBlock(p *ast.Paragraph, source []byte) bool {
	lines := p.Lines()
	if lines.Len() == 0 {
		return false
	}
	for i := range lines.Len() {
		seg := lines.At(i)
		if !propertyLine.Match(seg.Value(source)) {
			return false
		}
	}
	return true
}

// lineOf returns the 1-based line of the first source segment in node.
func lineOf(node ast.Node, source []byte) int {
	start := -1
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			start = lines.At(0).Start
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if start < 0 {
		return 0
	}
	return bytes.Count(source[:start], []byte("\n")) + 1
}

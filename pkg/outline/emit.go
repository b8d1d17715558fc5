package outline

import (
	"strings"

	"github.com/yaklabco/mdoutline/pkg/config"
)

// Role says how a line attaches to the outline.
type Role uint8

const (
	// RoleBullet starts a new node: indent, bullet marker, space.
	RoleBullet Role = iota
	// RoleContinuation continues the node above: indent, two spaces.
	RoleContinuation
	// RoleBare gets the indent only; the text carries its own nesting
	// (list items and content embedded in list items).
	RoleBare
)

// Rewrite selects which inline tokens are converted on a line.
type Rewrite uint8

const (
	RewriteNone  Rewrite = iota // code content, fences, rules
	RewriteLinks                // headings and blockquotes: links only
	RewriteAll                  // embeds, links and asset paths
)

// Mark tags lines that belong to a converted indented code block.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkCodeOpen
	MarkCode
	MarkCodeClose
)

// Line is one output line before rendering.
type Line struct {
	Depth   int
	Role    Role
	Text    string
	Rewrite Rewrite
	Mark    Mark
}

// StartsNode reports whether the line opens an outline node: a bullet the
// emitter adds or a list item that already carries one.
func (l Line) StartsNode() bool {
	return l.Role == RoleBullet || (l.Role == RoleBare && l.Rewrite == RewriteAll)
}

// BulletMarker is the canonical bullet of the produced outline.
const BulletMarker = "-"

// Emitter renders Lines with a fixed indent unit.
type Emitter struct {
	unit string
}

// NewEmitter returns an Emitter for the given indent style.
func NewEmitter(style config.IndentStyle) Emitter {
	return Emitter{unit: style.Unit()}
}

// Prefix returns the indentation and bullet for a line at depth with role.
func (e Emitter) Prefix(depth int, role Role) string {
	if depth < 0 {
		depth = 0
	}
	indent := strings.Repeat(e.unit, depth)

	switch role {
	case RoleBullet:
		return indent + BulletMarker + " "
	case RoleContinuation:
		return indent + "  "
	default:
		return indent
	}
}

// Render returns the prefixed text of line.
func (e Emitter) Render(line Line) string {
	return e.Prefix(line.Depth, line.Role) + line.Text
}

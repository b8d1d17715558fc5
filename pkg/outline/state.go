package outline

import (
	"strings"

	"github.com/yaklabco/mdoutline/pkg/config"
)

// Block is a block context tag.
type Block uint8

const (
	BlockNone Block = iota
	BlockFencedCode
	BlockIndentedCode
	BlockHeading
	BlockList
	BlockQuote
	BlockParagraph
)

func (b Block) String() string {
	switch b {
	case BlockFencedCode:
		return "fenced-code"
	case BlockIndentedCode:
		return "indented-code"
	case BlockHeading:
		return "heading"
	case BlockList:
		return "list"
	case BlockQuote:
		return "blockquote"
	case BlockParagraph:
		return "paragraph"
	default:
		return "none"
	}
}

// Stack is the block context stack, top last. It has value semantics:
// Push and Pop never modify the receiver's visible elements.
type Stack []Block

// Top returns the most recent block, or BlockNone.
func (s Stack) Top() Block {
	if len(s) == 0 {
		return BlockNone
	}
	return s[len(s)-1]
}

// Has reports whether b is anywhere on the stack.
func (s Stack) Has(b Block) bool {
	for _, tag := range s {
		if tag == b {
			return true
		}
	}
	return false
}

// Push returns a stack with b on top, unless b already is the top.
func (s Stack) Push(b Block) Stack {
	if s.Top() == b {
		return s
	}
	out := make(Stack, len(s), len(s)+1)
	copy(out, s)
	return append(out, b)
}

// Pop returns the stack without its top.
func (s Stack) Pop() Stack {
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1:len(s)-1]
}

// State is the complete block tracking state between two lines.
type State struct {
	Stack Stack

	// HeadingLevel is the depth of the last heading, 0 before any heading.
	HeadingLevel int

	// ListIndent is the 4-space indent level of the current list item.
	ListIndent int

	// Prev is the previous raw line; HasPrev is false at body start.
	Prev    string
	HasPrev bool

	// InBody turns true at the first non-blank line after the frontmatter.
	InBody bool

	// Fence is the marker that opened the current fenced code block.
	Fence string
}

// reset clears the context stack and the list indent.
func (s *State) reset() {
	s.Stack = nil
	s.ListIndent = 0
}

// lineCtx carries the forms of one input line the rules look at.
type lineCtx struct {
	raw     string // as read, newline included
	line    string // leading tabs expanded to four spaces
	trimmed string // line without leading whitespace
	nl      string // "\n" or "" on an unterminated last line
}

func newLineCtx(raw string) lineCtx {
	line := expandLeadingTabs(raw)
	nl := ""
	if strings.HasSuffix(raw, "\n") {
		nl = "\n"
	}
	return lineCtx{
		raw:     raw,
		line:    line,
		trimmed: strings.TrimLeft(line, " \t"),
		nl:      nl,
	}
}

func (l lineCtx) blank() bool {
	return strings.TrimSpace(l.line) == ""
}

// rule is one transition of the block state machine. It returns the lines to
// emit and whether the line is fully handled. Rules that return false may
// still have emitted lines and changed the state; evaluation continues with
// the next rule.
type rule func(s *State, ln lineCtx, policy config.BlankLinePolicy) ([]Line, bool)

// bodyRules are evaluated in priority order for every body line.
//
//nolint:gochecknoglobals // Read-only transition table.
var bodyRules = []rule{
	fenceRule,
	inFencedCodeRule,
	indentedCodeRule,
	blankRule,
	horizontalRuleRule,
	headingRule,
	blockquoteRule,
	listItemRule,
	plainRule,
}

// Step is the state machine transition: it classifies raw under s and
// returns the next state with the lines to emit. s is not modified.
func Step(s State, raw string, policy config.BlankLinePolicy) (State, []Line) {
	ln := newLineCtx(raw)


	var out []Line
	if !s.InBody {
		if ln.blank() {
			if policy == config.BlankKeep {
				out = append(out, Line{Role: RoleBullet, Text: ln.nl})
			}
			s.Prev, s.HasPrev = raw, true
			return s, out
		}
		s.InBody = true
	}

	for _, apply := range bodyRules {
		lines, done := apply(&s, ln, policy)
		out = append(out, lines...)
		if done {
			break
		}
	}

	s.Prev, s.HasPrev = raw, true
	return s, out
}

// Finish returns the lines that close whatever the end of the document
// leaves open. Only indented code is closed; an unterminated fenced block
// is left as is.
func Finish(s State) []Line {
	if s.Stack.Top() == BlockIndentedCode {
		return []Line{{Depth: s.HeadingLevel, Role: RoleContinuation, Text: "```\n", Mark: MarkCodeClose}}
	}
	return nil
}

func fenceRule(s *State, ln lineCtx, _ config.BlankLinePolicy) ([]Line, bool) {
	marker := fenceMarker(ln.trimmed)
	if marker == "" {
		return nil, false
	}

	if s.Stack.Top() == BlockFencedCode {
		if marker != s.Fence {
			return nil, false
		}
		closing := codeLine(s, ln.line)
		s.Stack = s.Stack.Pop()
		s.Fence = ""
		return []Line{closing}, true
	}

	if s.Stack.Top() == BlockHeading {
		s.reset()
	}

	depth := s.HeadingLevel
	var opening Line
	switch {
	case s.Stack.Has(BlockList):
		opening = nestedInList(s, ln)
	case s.Stack.Top() == BlockParagraph:
		opening = Line{Depth: depth, Role: RoleContinuation, Text: ln.line}
	default:
		s.reset()
		opening = Line{Depth: depth, Role: RoleBullet, Text: ln.line}
	}

	s.Stack = s.Stack.Push(BlockFencedCode)
	s.Fence = marker
	return []Line{opening}, true
}

func inFencedCodeRule(s *State, ln lineCtx, _ config.BlankLinePolicy) ([]Line, bool) {
	if s.Stack.Top() != BlockFencedCode {
		return nil, false
	}
	return []Line{codeLine(s, ln.raw)}, true
}

func indentedCodeRule(s *State, ln lineCtx, _ config.BlankLinePolicy) ([]Line, bool) {
	depth := s.HeadingLevel

	if !strings.HasPrefix(ln.line, codeIndent) {
		if s.Stack.Top() != BlockIndentedCode {
			return nil, false
		}
		s.Stack = s.Stack.Pop()
		return []Line{{Depth: depth, Role: RoleContinuation, Text: "```\n", Mark: MarkCodeClose}}, false
	}

	var out []Line
	top := s.Stack.Top()
	if (top == BlockNone || top == BlockHeading) && !ln.blank() {
		if top == BlockHeading {
			s.reset()
		}
		out = append(out, Line{Depth: depth, Role: RoleBullet, Text: "```\n", Mark: MarkCodeOpen})
		s.Stack = s.Stack.Push(BlockIndentedCode)
	}

	if s.Stack.Top() != BlockIndentedCode {
		return nil, false
	}

	out = append(out, Line{Depth: depth, Role: RoleContinuation, Text: stripCodeIndent(ln.raw), Mark: MarkCode})
	return out, true
}

func blankRule(s *State, ln lineCtx, policy config.BlankLinePolicy) ([]Line, bool) {
	if !ln.blank() {
		return nil, false
	}

	if s.Stack.Top() != BlockHeading {
		s.reset()
	}

	placeholder := []Line{{Depth: s.HeadingLevel, Role: RoleBullet, Text: ln.nl}}

	switch policy {
	case config.BlankKeep:
		return placeholder, true
	case config.BlankRemove:
		return nil, true
	default:
		if s.Stack.Top() == BlockHeading {
			return nil, true
		}
		if s.HasPrev && strings.TrimSpace(s.Prev) != "" {
			return placeholder, true
		}
		return nil, true
	}
}

func horizontalRuleRule(s *State, ln lineCtx, _ config.BlankLinePolicy) ([]Line, bool) {
	switch strings.TrimSpace(ln.line) {
	case "---", "***", "___":
		return []Line{{Depth: s.HeadingLevel, Role: RoleBullet, Text: ln.trimmed}}, true
	default:
		return nil, false
	}
}

func headingRule(s *State, ln lineCtx, _ config.BlankLinePolicy) ([]Line, bool) {
	level := headingLevel(ln.line)
	if level == 0 {
		return nil, false
	}

	s.HeadingLevel = level
	s.reset()
	s.Stack = s.Stack.Push(BlockHeading)

	return []Line{{Depth: level - 1, Role: RoleBullet, Text: ln.line, Rewrite: RewriteLinks}}, true
}

func blockquoteRule(s *State, ln lineCtx, _ config.BlankLinePolicy) ([]Line, bool) {
	if !strings.HasPrefix(ln.trimmed, ">") {
		return nil, false
	}

	var quote Line
	switch {
	case s.Stack.Has(BlockList):
		quote = nestedInList(s, ln)
	case s.Stack.Top() == BlockQuote:
		quote = Line{Depth: s.HeadingLevel, Role: RoleContinuation, Text: ln.line}
	default:
		s.reset()
		quote = Line{Depth: s.HeadingLevel, Role: RoleBullet, Text: ln.line}
	}
	quote.Rewrite = RewriteLinks

	s.Stack = s.Stack.Push(BlockQuote)
	return []Line{quote}, true
}

func listItemRule(s *State, ln lineCtx, _ config.BlankLinePolicy) ([]Line, bool) {
	if !isListItem(ln.trimmed) {
		return nil, false
	}

	s.ListIndent = indentLevel(ln.line)
	s.Stack = s.Stack.Push(BlockList)

	lead := len(ln.line) - len(ln.trimmed)
	text := ln.line[:lead] + BulletMarker + ln.trimmed[1:]

	return []Line{{Depth: s.HeadingLevel, Role: RoleBare, Text: text, Rewrite: RewriteAll}}, true
}

func plainRule(s *State, ln lineCtx, _ config.BlankLinePolicy) ([]Line, bool) {
	depth := s.HeadingLevel

	if s.HasPrev && strings.TrimSpace(s.Prev) != "" && indentLevel(ln.line) >= s.ListIndent {
		return []Line{{Depth: depth, Role: RoleContinuation, Text: ln.line, Rewrite: RewriteAll}}, true
	}

	s.reset()
	s.Stack = s.Stack.Push(BlockParagraph)
	return []Line{{Depth: depth, Role: RoleBullet, Text: ln.line, Rewrite: RewriteAll}}, true
}

// nestedInList places a fence or blockquote that appears while a list is
// open. At the item's indent or deeper it belongs to the item and keeps its
// own indentation; shallower, it starts a new bullet at its own depth.
func nestedInList(s *State, ln lineCtx) Line {
	indent := indentLevel(ln.line)
	if indent >= s.ListIndent {
		return Line{Depth: s.HeadingLevel, Role: RoleBare, Text: ln.line}
	}
	s.ListIndent = indent
	return Line{Depth: s.HeadingLevel + indent, Role: RoleBullet, Text: ln.trimmed}
}

// codeLine aligns fenced code with its container: list items carry their own
// indentation, anything else sits under a paragraph bullet.
func codeLine(s *State, text string) Line {
	if s.Stack.Has(BlockList) {
		return Line{Depth: s.HeadingLevel, Role: RoleBare, Text: text}
	}
	return Line{Depth: s.HeadingLevel, Role: RoleContinuation, Text: text}
}

const (
	codeIndent   = "    "
	indentWidth  = len(codeIndent)
	maxHeadingNo = 6
)

// fenceMarker returns the fence a line opens or closes with, or "".
func fenceMarker(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "```"
	case strings.HasPrefix(trimmed, "~~~"):
		return "~~~"
	default:
		return ""
	}
}

// headingLevel returns N for a line starting with N (1-6) '#' and a space.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > maxHeadingNo || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

// isListItem reports whether trimmed starts with a bullet marker and a space.
func isListItem(trimmed string) bool {
	if len(trimmed) < 2 || trimmed[1] != ' ' {
		return false
	}
	switch trimmed[0] {
	case '-', '*', '+':
		return true
	default:
		return false
	}
}

// indentLevel counts complete groups of four leading spaces.
func indentLevel(line string) int {
	spaces := len(line) - len(strings.TrimLeft(line, " "))
	return spaces / indentWidth
}

// expandLeadingTabs replaces each leading tab with four spaces.
func expandLeadingTabs(line string) string {
	tabs := 0
	for tabs < len(line) && line[tabs] == '\t' {
		tabs++
	}
	if tabs == 0 {
		return line
	}
	return strings.Repeat(codeIndent, tabs) + line[tabs:]
}

// stripCodeIndent removes one level of code indentation from a raw line,
// either a leading tab or four spaces.
func stripCodeIndent(raw string) string {
	if strings.HasPrefix(raw, "\t") {
		return raw[1:]
	}
	return strings.TrimPrefix(raw, codeIndent)
}

// Tracker runs the state machine over a document, one line at a time.
type Tracker struct {
	state  State
	policy config.BlankLinePolicy
}

// NewTracker returns a Tracker at the start of a document body.
func NewTracker(policy config.BlankLinePolicy) *Tracker {
	return &Tracker{policy: policy}
}

// Feed consumes one raw line and returns the lines to emit.
func (t *Tracker) Feed(raw string) []Line {
	next, lines := Step(t.state, raw, t.policy)
	t.state = next
	return lines
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// Finish returns the lines that close the document.
func (t *Tracker) Finish() []Line {
	return Finish(t.state)
}

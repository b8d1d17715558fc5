package outline

import "strings"

// Buffer assembles the output document. Lines inserted at the front (page
// properties) are kept apart from the body so body indexes stay stable.
type Buffer struct {
	front []string
	body  []string
}

// Append adds s to the body and returns its index.
func (b *Buffer) Append(s string) int {
	b.body = append(b.body, s)
	return len(b.body) - 1
}

// InsertFront places s before everything else.
func (b *Buffer) InsertFront(s string) {
	b.front = append([]string{s}, b.front...)
}

// Set replaces the body line at idx.
func (b *Buffer) Set(idx int, s string) {
	if idx >= 0 && idx < len(b.body) {
		b.body[idx] = s
	}
}

// Line returns the body line at idx.
func (b *Buffer) Line(idx int) string {
	if idx < 0 || idx >= len(b.body) {
		return ""
	}
	return b.body[idx]
}

// Len returns the number of assembled lines.
func (b *Buffer) Len() int {
	return len(b.front) + len(b.body)
}

// EnsureNewline terminates the last body line if it is unterminated.
func (b *Buffer) EnsureNewline() {
	if n := len(b.body); n > 0 && !strings.HasSuffix(b.body[n-1], "\n") {
		b.body[n-1] += "\n"
	}
}

// String returns the assembled document.
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, s := range b.front {
		sb.WriteString(s)
	}
	for _, s := range b.body {
		sb.WriteString(s)
	}
	return sb.String()
}

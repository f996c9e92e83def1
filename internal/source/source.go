// Package source holds the immutable source buffer and the position
// lookup utility (spec §4.7). Position lookup is a linear scan from
// the start of the buffer; this is acceptable because it only runs at
// diagnostic time (spec §4.7).
package source

// Buffer is an immutable byte sequence with known length. Every span
// persisted elsewhere in the pipeline is a byte offset into a Buffer,
// not a pointer, so it survives arena moves.
type Buffer struct {
	Module string
	Bytes  []byte
}

// New wraps src as a Buffer for module name (used in diagnostics).
func New(module string, src []byte) *Buffer {
	return &Buffer{Module: module, Bytes: src}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.Bytes) }

// Slice returns the bytes of the span {offset, length}.
func (b *Buffer) Slice(offset, length int) []byte {
	return b.Bytes[offset : offset+length]
}

// Position is the resolved human-readable location of a byte offset:
// 1-based line and column, plus the byte span of the containing line
// (for rendering a caret underline).
type Position struct {
	Line      int
	Column    int
	LineStart int
	LineEnd   int
}

// Resolve scans b.Bytes from the start, counting '\n', until it has
// located the line and column containing byteOffset. The line ends at
// '\n', '\r', or end-of-source.
func (b *Buffer) Resolve(byteOffset int) Position {
	if byteOffset < 0 {
		byteOffset = 0
	}
	if byteOffset > len(b.Bytes) {
		byteOffset = len(b.Bytes)
	}
	line := 1
	lineStart := 0
	for i := 0; i < byteOffset; i++ {
		if b.Bytes[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := lineStart
	for lineEnd < len(b.Bytes) && b.Bytes[lineEnd] != '\n' && b.Bytes[lineEnd] != '\r' {
		lineEnd++
	}
	return Position{
		Line:      line,
		Column:    byteOffset - lineStart + 1,
		LineStart: lineStart,
		LineEnd:   lineEnd,
	}
}

// Render produces the source part of a human-readable diagnostic: the
// offending source line and a caret underline beneath the span (spec
// §6). The resolved position is not included; callers print it
// separately.
func (b *Buffer) Render(offset, length int) string {
	pos := b.Resolve(offset)
	lineText := string(b.Bytes[pos.LineStart:pos.LineEnd])
	underline := make([]byte, pos.Column-1+length)
	for i := range underline {
		if i < pos.Column-1 {
			underline[i] = ' '
		} else {
			underline[i] = '^'
		}
	}
	if length == 0 {
		underline = append(underline, '^')
	}
	return lineText + "\n" + string(underline)
}

package buffer

import (
	"strings"

	"github.com/riverfjs/tgcompose/internal/util"
)

// TextBuffer accumulates plain text and tracks the current code point offset.
//
// Every written part has its line endings canonicalized to "\r\n" before it
// is counted, so offsets read from the buffer always refer to the final text.
type TextBuffer struct {
	parts     []string
	runeCount int
	byteCount int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		parts: make([]string, 0),
	}
}

// Write appends text to the buffer and returns the normalized part.
func (tb *TextBuffer) Write(text string) string {
	if text == "" {
		return ""
	}
	text = util.NormalizeNewlines(text)
	tb.parts = append(tb.parts, text)
	tb.runeCount += util.RuneLen(text)
	tb.byteCount += len(text)
	return text
}

// Offset returns the current code point offset.
func (tb *TextBuffer) Offset() int {
	return tb.runeCount
}

// ByteOffset returns the current byte offset (total string length).
func (tb *TextBuffer) ByteOffset() int {
	return tb.byteCount
}

// TrailingNewlineCount counts trailing line breaks in the buffer.
// A "\r\n" pair counts as one line break.
func (tb *TextBuffer) TrailingNewlineCount() int {
	count := 0
	for i := len(tb.parts) - 1; i >= 0; i-- {
		part := tb.parts[i]
		for j := len(part) - 1; j >= 0; j-- {
			switch part[j] {
			case '\n':
				count++
			case '\r':
			default:
				return count
			}
		}
	}
	return count
}

// PopLast removes and returns the last written part.
// Used for replacing just-written bullet prefixes in task lists.
func (tb *TextBuffer) PopLast() string {
	if len(tb.parts) == 0 {
		return ""
	}
	last := tb.parts[len(tb.parts)-1]
	tb.parts = tb.parts[:len(tb.parts)-1]
	tb.runeCount -= util.RuneLen(last)
	tb.byteCount -= len(last)
	return last
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	if len(tb.parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(tb.byteCount)
	for _, p := range tb.parts {
		b.WriteString(p)
	}
	return b.String()
}

// Reset clears the buffer.
func (tb *TextBuffer) Reset() {
	tb.parts = tb.parts[:0]
	tb.runeCount = 0
	tb.byteCount = 0
}

package util

import (
	"strings"
	"unicode/utf8"
)

// RuneLen returns the length of text measured in Unicode code points.
//
// Entity offsets and lengths are counted in code points, so characters outside
// the BMP (most emoji) count as 1, not as a surrogate pair and not as their
// UTF-8 byte count. An invalid UTF-8 byte counts as one code point.
func RuneLen(text string) int {
	return utf8.RuneCountInString(text)
}

// NormalizeNewlines converts every "\n" that is not already preceded by "\r"
// into "\r\n". Existing "\r\n" pairs are left untouched, so the function is
// idempotent.
func NormalizeNewlines(text string) string {
	n := strings.Count(text, "\n") - strings.Count(text, "\r\n")
	if n == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + n)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' && (i == 0 || text[i-1] != '\r') {
			b.WriteByte('\r')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// RuneOffsets builds a cumulative code point offset table for each byte position.
// result[i] is the code point offset at byte position i; positions inside a
// multi-byte sequence carry the offset of the rune they belong to.
func RuneOffsets(text string) []int {
	offsets := make([]int, len(text)+1)
	cum := 0
	prev := 0
	for bytePos := range text {
		for ; prev < bytePos; prev++ {
			offsets[prev] = cum - 1
		}
		offsets[bytePos] = cum
		prev = bytePos + 1
		cum++
	}
	for ; prev < len(text); prev++ {
		offsets[prev] = cum - 1
	}
	offsets[len(text)] = cum
	return offsets
}

// ByteIndex returns the byte position of the code point at index runeIdx.
// Indexes past the end map to len(text).
func ByteIndex(text string, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	n := 0
	for i := range text {
		if n == runeIdx {
			return i
		}
		n++
	}
	return len(text)
}

package tgcompose

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/riverfjs/tgcompose/internal/util"
)

// MaxMessageLength is the Bot API limit for the text of one message.
const MaxMessageLength = 4096

// findNewlinePositions returns the byte positions right after each line feed.
func findNewlinePositions(text string) []int {
	var points []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			points = append(points, i+1)
		}
	}
	return points
}

// findGraphemeBoundaries returns the byte positions where a grapheme cluster ends.
func findGraphemeBoundaries(text string) []int {
	var points []int
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		_, end := g.Positions()
		points = append(points, end)
	}
	return points
}

// lastFitting returns the largest point in points within (start, limit] measured
// by offsets, or -1.
func lastFitting(points []int, offsets []int, start int, limit int) int {
	best := -1
	for _, p := range points {
		if p <= start {
			continue
		}
		if offsets[p] > limit {
			break
		}
		best = p
	}
	return best
}

// Split splits f into chunks of at most maxLen code points.
//
// It tries to cut right after a line break. When a line does not fit, it cuts
// at the last grapheme cluster boundary inside the budget, and only splits a
// cluster when a single cluster is longer than maxLen. Entities that span a
// cut are clipped into both chunks.
func Split(f Fragment, maxLen int) []Fragment {
	if maxLen <= 0 {
		maxLen = MaxMessageLength
	}
	text := f.Text
	offsets := util.RuneOffsets(text)
	if offsets[len(text)] <= maxLen {
		return []Fragment{f}
	}

	splitPoints := findNewlinePositions(text)
	var graphemes []int

	// [byteStart, byteEnd] 按贪心策略划分
	var chunkRanges [][2]int
	byteStart := 0
	for byteStart < len(text) {
		budget := offsets[byteStart] + maxLen
		if offsets[len(text)] <= budget {
			chunkRanges = append(chunkRanges, [2]int{byteStart, len(text)})
			break
		}

		cut := lastFitting(splitPoints, offsets, byteStart, budget)
		if cut == -1 {
			if graphemes == nil {
				graphemes = findGraphemeBoundaries(text)
			}
			cut = lastFitting(graphemes, offsets, byteStart, budget)
			if cut == -1 {
				// 单个字素簇超过预算，按 code point 硬切
				cut = util.ByteIndex(text[byteStart:], maxLen) + byteStart
			}
			Logger.Printf("hard split at code point %d: no line break within %d code points", offsets[cut], maxLen)
		}

		chunkRanges = append(chunkRanges, [2]int{byteStart, cut})
		byteStart = cut
	}

	chunks := make([]Fragment, 0, len(chunkRanges))
	for _, r := range chunkRanges {
		chunks = append(chunks, slice(f, r[0], r[1], offsets[r[0]], offsets[r[1]]))
	}
	return chunks
}

// slice extracts text[byteStart:byteEnd] and the entities overlapping
// [runeStart, runeEnd), clipped and re-based to the chunk.
func slice(f Fragment, byteStart, byteEnd, runeStart, runeEnd int) Fragment {
	chunk := Fragment{
		Text:     f.Text[byteStart:byteEnd],
		Entities: make([]Span, 0),
	}
	for _, s := range f.Entities {
		if s.End() <= runeStart || s.Offset >= runeEnd {
			continue
		}
		start := max(s.Offset, runeStart)
		end := min(s.End(), runeEnd)
		if end-start <= 0 {
			continue
		}
		chunk.Entities = append(chunk.Entities, Span{
			Kind:   s.Kind,
			Offset: start - runeStart,
			Length: end - start,
		})
	}
	return chunk
}

// trim strips leading and trailing characters matched by cut and re-bases the entities.
func trim(f Fragment, cut func(r rune) bool) Fragment {
	text := f.Text
	byteStart := len(text) - len(strings.TrimLeftFunc(text, cut))
	byteEnd := byteStart + len(strings.TrimRightFunc(text[byteStart:], cut))
	if byteStart == 0 && byteEnd == len(text) {
		return f
	}
	if byteStart == byteEnd {
		return Fragment{Text: "", Entities: []Span{}}
	}

	runeStart := util.RuneLen(text[:byteStart])
	runeEnd := runeStart + util.RuneLen(text[byteStart:byteEnd])
	return slice(f, byteStart, byteEnd, runeStart, runeEnd)
}

// TrimNewlines removes leading and trailing line breaks and adjusts the entities.
func TrimNewlines(f Fragment) Fragment {
	return trim(f, func(r rune) bool { return r == '\n' || r == '\r' })
}

// TrimSpace removes leading and trailing whitespace while adjusting entities.
func TrimSpace(f Fragment) Fragment {
	return trim(f, isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

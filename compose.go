package tgcompose

import (
	"github.com/riverfjs/tgcompose/internal/buffer"
	"github.com/riverfjs/tgcompose/internal/util"
)

// Len returns the length of text in Unicode code points, the unit Telegram
// entity offsets are computed in by this package.
func Len(text string) int {
	return util.RuneLen(text)
}

// NormalizeNewlines converts every bare "\n" into "\r\n".
func NormalizeNewlines(text string) string {
	return util.NormalizeNewlines(text)
}

// Entity wraps contents with a single span of the given kind covering all of
// its text. When contents is a Fragment its existing entities are kept, in
// order, before the new one.
//
// Example:
//
//	tgcompose.Entity(tgcompose.Plain("world"), tgcompose.Bold{})
//	// => {Text: "world", Entities: [{Bold, 0, 5}]}
func Entity(contents Value, kind Kind) Fragment {
	decorated := normalize(contents.fragment())

	entities := make([]Span, 0, len(decorated.Entities)+1)
	entities = append(entities, decorated.Entities...)
	entities = append(entities, Span{
		Kind:   kind,
		Offset: 0,
		Length: util.RuneLen(decorated.Text),
	})
	return Fragment{Text: decorated.Text, Entities: entities}
}

// BuildMessage concatenates pieces interleaved with values, in the order
// pieces[0] values[0] pieces[1] values[1] ... pieces[n], and shifts
// the entities of every embedded Fragment to its position in the result.
//
// Each piece and each Plain value has its line endings normalized to "\r\n".
// Values beyond len(pieces) are ignored.
//
// Example:
//
//	link := tgcompose.Entity(tgcompose.Plain("world"), tgcompose.TextLink{URL: "https://example.com"})
//	msg := tgcompose.BuildMessage([]string{"Hello ", "!"}, link)
//	// => {Text: "Hello world!", Entities: [{TextLink, 6, 5}]}
func BuildMessage(pieces []string, values ...Value) Fragment {
	buf := buffer.New()
	entities := make([]Span, 0)

	for i, part := range pieces {
		buf.Write(part)

		if i >= len(values) || values[i] == nil {
			continue
		}
		switch v := values[i].(type) {
		case Plain:
			buf.Write(string(v))
		case Fragment:
			v = normalize(v)
			offset := buf.Offset()
			buf.Write(v.Text)
			for _, s := range v.Entities {
				entities = append(entities, s.Shift(offset))
			}
		}
	}

	return Fragment{Text: buf.String(), Entities: entities}
}

// Concat joins values with no literal text between them.
func Concat(values ...Value) Fragment {
	return BuildMessage(make([]string, len(values)+1), values...)
}

// normalize canonicalizes the line endings of f and moves its spans so they
// keep covering the same characters. A span touching a bare "\n" grows to
// cover the inserted "\r" as well.
func normalize(f Fragment) Fragment {
	text := util.NormalizeNewlines(f.Text)
	if len(text) == len(f.Text) {
		return f
	}

	// shift[i] is the number of "\r" inserted before code point i.
	shift := make([]int, 0, len(f.Text)+1)
	inserted := 0
	prev := rune(0)
	for _, r := range f.Text {
		shift = append(shift, inserted)
		if r == '\n' && prev != '\r' {
			inserted++
		}
		prev = r
	}
	shift = append(shift, inserted)

	at := func(p int) int {
		switch {
		case p < 0:
			return p
		case p >= len(shift):
			return p + inserted
		}
		return p + shift[p]
	}

	entities := make([]Span, 0, len(f.Entities))
	for _, s := range f.Entities {
		start, end := at(s.Offset), at(s.End())
		entities = append(entities, Span{Kind: s.Kind, Offset: start, Length: end - start})
	}
	return Fragment{Text: text, Entities: entities}
}

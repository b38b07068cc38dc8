package tgcompose

import (
	"encoding/json"
	"fmt"

	"github.com/riverfjs/tgcompose/internal/types"
)

// MessageEntity is the Bot API wire form of a Span.
type MessageEntity = types.MessageEntity

// Span is one formatting annotation over a Fragment's text.
// Offset and Length are counted in Unicode code points.
type Span struct {
	Kind   Kind
	Offset int
	Length int
}

// End returns the code point index right after the last covered character.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Shift returns a copy of s moved n code points to the right.
func (s Span) Shift(n int) Span {
	s.Offset += n
	return s
}

// Entity returns the wire form of s.
func (s Span) Entity() MessageEntity {
	e := MessageEntity{
		Offset: s.Offset,
		Length: s.Length,
	}
	if s.Kind != nil {
		e.Type = s.Kind.Type()
		s.Kind.apply(&e)
	}
	return e
}

// SpanOf converts a wire entity back into a Span.
func SpanOf(e MessageEntity) (Span, error) {
	kind, err := KindOf(e)
	if err != nil {
		return Span{}, err
	}
	return Span{Kind: kind, Offset: e.Offset, Length: e.Length}, nil
}

// MarshalJSON encodes s as {"type", "offset", "length", ...kind fields}.
func (s Span) MarshalJSON() ([]byte, error) {
	if s.Kind == nil {
		return nil, fmt.Errorf("tgcompose: span at offset %d has no kind", s.Offset)
	}
	return json.Marshal(s.Entity())
}

// UnmarshalJSON decodes the wire entity shape.
func (s *Span) UnmarshalJSON(data []byte) error {
	var e MessageEntity
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	span, err := SpanOf(e)
	if err != nil {
		return err
	}
	*s = span
	return nil
}

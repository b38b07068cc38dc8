package tgcompose

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/riverfjs/tgcompose/internal/util"
)

// ErrSpanOutOfRange reports a span that does not fit inside its fragment's text.
var ErrSpanOutOfRange = errors.New("tgcompose: span out of range")

// Value is anything that can be embedded into a message: a Fragment or Plain text.
type Value interface {
	fragment() Fragment
}

// Plain is unformatted text. Embedding it contributes no entities.
type Plain string

func (p Plain) fragment() Fragment {
	return Fragment{Text: string(p), Entities: []Span{}}
}

// Fragment is formatted text: the plain text sent to Telegram plus the
// entities that describe where each style applies.
//
// A Fragment is a value. Every operation in this package returns a new
// Fragment and never modifies the entities slice of its inputs.
type Fragment struct {
	Text     string
	Entities []Span
}

func (f Fragment) fragment() Fragment {
	return f
}

// String returns the plain text.
func (f Fragment) String() string {
	return f.Text
}

// Len returns the length of the text in code points.
func (f Fragment) Len() int {
	return util.RuneLen(f.Text)
}

// Covered returns the part of the text covered by s.
func (f Fragment) Covered(s Span) string {
	start := util.ByteIndex(f.Text, s.Offset)
	end := util.ByteIndex(f.Text, s.End())
	if end < start {
		return ""
	}
	return f.Text[start:end]
}

// MessageEntities returns the entities in wire form, ready for a sendMessage call.
func (f Fragment) MessageEntities() []MessageEntity {
	out := make([]MessageEntity, 0, len(f.Entities))
	for _, s := range f.Entities {
		out = append(out, s.Entity())
	}
	return out
}

// Validate checks that every span lies inside the text and has a kind.
func (f Fragment) Validate() error {
	n := f.Len()
	for i, s := range f.Entities {
		if s.Kind == nil {
			return fmt.Errorf("entity %d: no kind", i)
		}
		if s.Offset < 0 || s.Length < 0 || s.End() > n {
			return fmt.Errorf("%w: entity %d (%s) covers [%d, %d) of %d code points",
				ErrSpanOutOfRange, i, s.Kind.Type(), s.Offset, s.End(), n)
		}
	}
	if strings.Count(f.Text, "\n") != strings.Count(f.Text, "\r\n") {
		return fmt.Errorf("tgcompose: text contains a bare line feed")
	}
	return nil
}

type wireFragment struct {
	Text     string `json:"text"`
	Entities []Span `json:"entities"`
}

// MarshalJSON encodes f as {"text": ..., "entities": [...]}.
func (f Fragment) MarshalJSON() ([]byte, error) {
	entities := f.Entities
	if entities == nil {
		entities = []Span{}
	}
	return json.Marshal(wireFragment{Text: f.Text, Entities: entities})
}

// UnmarshalJSON decodes the {"text", "entities"} shape.
func (f *Fragment) UnmarshalJSON(data []byte) error {
	var w wireFragment
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Entities == nil {
		w.Entities = []Span{}
	}
	*f = Fragment{Text: w.Text, Entities: w.Entities}
	return nil
}

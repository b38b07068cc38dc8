package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riverfjs/tgcompose/internal/types"
)

func TestParse(t *testing.T) {
	res := Parse("**bold** and [link](https://example.com)", nil)

	if res.Text != "bold and link" {
		t.Errorf("Text = %q, want %q", res.Text, "bold and link")
	}
	want := []types.MessageEntity{
		{Type: "bold", Offset: 0, Length: 4},
		{Type: "text_link", Offset: 9, Length: 4, URL: "https://example.com"},
	}
	if diff := cmp.Diff(want, res.Entities); diff != "" {
		t.Errorf("Entities mismatch (-want +got):\n%s", diff)
	}
	if len(res.Unclosed) != 0 {
		t.Errorf("Unclosed = %v, want none", res.Unclosed)
	}
}

func TestParse_NestedBlockquote(t *testing.T) {
	res := Parse("> outer\n>\n> > inner", nil)

	var quotes int
	for _, e := range res.Entities {
		if e.Type == "blockquote" {
			quotes++
		}
	}
	if quotes != 1 {
		t.Errorf("got %d blockquote entities, want only the outermost (%v)", quotes, res.Entities)
	}
}

func TestParse_EmptyLinkIsPlain(t *testing.T) {
	res := Parse("[text]()", nil)
	if res.Text != "text" {
		t.Errorf("Text = %q, want %q", res.Text, "text")
	}
	if len(res.Entities) != 0 {
		t.Errorf("Entities = %v, want none", res.Entities)
	}
}

package tgcompose

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestFragment_MarshalWireShape 测试线上格式
func TestFragment_MarshalWireShape(t *testing.T) {
	msg := BuildMessage([]string{"Hello ", ""}, Entity(Plain("world"), TextLink{URL: exampleURL}))
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"text":"Hello world","entities":[{"type":"text_link","offset":6,"length":5,"url":"https://example.com"}]}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
}

func TestFragment_MarshalEmptyEntities(t *testing.T) {
	data, err := json.Marshal(Fragment{Text: "x"})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `{"text":"x","entities":[]}` {
		t.Errorf("json.Marshal() = %s, want entities to be []", data)
	}
}

func TestSpan_MarshalKindFields(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want string
	}{
		{
			name: "pre with language",
			span: Span{Kind: Pre{Language: "go"}, Offset: 1, Length: 2},
			want: `{"type":"pre","offset":1,"length":2,"language":"go"}`,
		},
		{
			name: "custom emoji",
			span: Span{Kind: CustomEmoji{CustomEmojiID: "5368324170671202286"}, Offset: 0, Length: 1},
			want: `{"type":"custom_emoji","offset":0,"length":1,"custom_emoji_id":"5368324170671202286"}`,
		},
		{
			name: "text mention",
			span: Span{Kind: TextMention{User: User{ID: 42, FirstName: "Ann"}}, Offset: 0, Length: 3},
			want: `{"type":"text_mention","offset":0,"length":3,"user":{"id":42,"is_bot":false,"first_name":"Ann"}}`,
		},
		{
			name: "bold has no extra fields",
			span: Span{Kind: Bold{}, Offset: 0, Length: 5},
			want: `{"type":"bold","offset":0,"length":5}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.span)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("json.Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestSpan_MarshalWithoutKind(t *testing.T) {
	if _, err := json.Marshal(Span{Offset: 1}); err == nil {
		t.Error("json.Marshal() should fail for a span without kind")
	}
}

// TestFragment_RoundTrip 测试线上格式往返
func TestFragment_RoundTrip(t *testing.T) {
	world := BuildMessage([]string{"wor", ""}, Entity(Plain("ld"), Italic{}))
	msg := BuildMessage([]string{"Hi ", " ", "\n"},
		Entity(world, Bold{}),
		Entity(Plain("@bob"), TextMention{User: User{ID: 7, FirstName: "Bob", Username: "bob"}}),
	)

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var got Fragment
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !cmp.Equal(got, msg) {
		t.Errorf("round trip diff: %v", cmp.Diff(msg, got))
	}
}

func TestFragment_UnmarshalUnknownType(t *testing.T) {
	var f Fragment
	err := json.Unmarshal([]byte(`{"text":"x","entities":[{"type":"blink","offset":0,"length":1}]}`), &f)
	if !errors.Is(err, ErrUnknownEntityType) {
		t.Errorf("json.Unmarshal() error = %v, want ErrUnknownEntityType", err)
	}
}

func TestFragment_UnmarshalMissingEntities(t *testing.T) {
	var f Fragment
	if err := json.Unmarshal([]byte(`{"text":"x"}`), &f); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if f.Entities == nil || len(f.Entities) != 0 {
		t.Errorf("Entities = %#v, want empty slice", f.Entities)
	}
}

func TestFragment_MessageEntities(t *testing.T) {
	msg := Entity(Plain("code"), Pre{Language: "python"})
	got := msg.MessageEntities()
	expected := []MessageEntity{{Type: "pre", Offset: 0, Length: 4, Language: "python"}}
	if !cmp.Equal(got, expected) {
		t.Errorf("MessageEntities() diff: %v", cmp.Diff(expected, got))
	}
}

func TestKindOf_AllTypes(t *testing.T) {
	kinds := []Kind{
		Mention{}, Hashtag{}, Cashtag{}, BotCommand{}, URL{}, Email{}, PhoneNumber{},
		Bold{}, Italic{}, Underline{}, Strikethrough{}, Spoiler{}, Blockquote{},
		ExpandableBlockquote{}, Code{}, Pre{Language: "go"}, TextLink{URL: exampleURL},
		TextMention{User: User{ID: 1, FirstName: "A"}}, CustomEmoji{CustomEmojiID: "1"},
	}
	for _, k := range kinds {
		t.Run(k.Type(), func(t *testing.T) {
			got, err := KindOf(Span{Kind: k}.Entity())
			if err != nil {
				t.Fatalf("KindOf() error = %v", err)
			}
			if !cmp.Equal(got, k) {
				t.Errorf("KindOf() diff: %v", cmp.Diff(k, got))
			}
		})
	}
}

func TestFragment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		f       Fragment
		wantErr error
	}{
		{
			name: "valid",
			f:    Entity(Plain("hi👋"), Bold{}),
		},
		{
			name:    "past end",
			f:       Fragment{Text: "hi👋", Entities: []Span{{Kind: Bold{}, Offset: 1, Length: 3}}},
			wantErr: ErrSpanOutOfRange,
		},
		{
			name:    "negative offset",
			f:       Fragment{Text: "hi", Entities: []Span{{Kind: Bold{}, Offset: -1, Length: 1}}},
			wantErr: ErrSpanOutOfRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := (Fragment{Text: "a\nb"}).Validate(); err == nil {
		t.Error("Validate() should reject a bare line feed")
	}
}

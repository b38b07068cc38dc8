package buffer

import "testing"

func TestTextBuffer_Write(t *testing.T) {
	tb := New()
	if got := tb.Write("a\nb"); got != "a\r\nb" {
		t.Errorf("Write() = %q, want normalized part", got)
	}
	tb.Write("😀")
	tb.Write("")

	if tb.String() != "a\r\nb😀" {
		t.Errorf("String() = %q", tb.String())
	}
	if tb.Offset() != 5 {
		t.Errorf("Offset() = %d, want 5", tb.Offset())
	}
	if tb.ByteOffset() != 8 {
		t.Errorf("ByteOffset() = %d, want 8", tb.ByteOffset())
	}
}

func TestTextBuffer_TrailingNewlineCount(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  int
	}{
		{"empty", nil, 0},
		{"no newline", []string{"abc"}, 0},
		{"one", []string{"abc\n"}, 1},
		{"two in one part", []string{"abc\n\n"}, 2},
		{"across parts", []string{"abc\n", "\n", "\n"}, 3},
		{"only newlines", []string{"\n\n"}, 2},
		{"text after", []string{"\n", "x"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := New()
			for _, p := range tt.parts {
				tb.Write(p)
			}
			if got := tb.TrailingNewlineCount(); got != tt.want {
				t.Errorf("TrailingNewlineCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTextBuffer_PopLast(t *testing.T) {
	tb := New()
	tb.Write("hello ")
	tb.Write("⦁ ")

	if got := tb.PopLast(); got != "⦁ " {
		t.Errorf("PopLast() = %q, want %q", got, "⦁ ")
	}
	if tb.Offset() != 6 || tb.ByteOffset() != 6 {
		t.Errorf("after PopLast offset = %d/%d, want 6/6", tb.Offset(), tb.ByteOffset())
	}

	tb.Reset()
	if tb.PopLast() != "" || tb.String() != "" || tb.Offset() != 0 {
		t.Error("Reset() should empty the buffer")
	}
}

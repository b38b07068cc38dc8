package tgcompose

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"
)

var propertyAlphabet = []string{"a", "b", "Z", " ", "\n", "\r\n", "😀", "👍🏽", "你", "é"}

var propertyKinds = []Kind{
	Bold{}, Italic{}, Underline{}, Strikethrough{}, Spoiler{}, Code{},
	Pre{Language: "go"}, TextLink{URL: "https://example.com"}, CustomEmoji{CustomEmojiID: "5368324170671202286"},
}

func randomText(r *rand.Rand) string {
	var b strings.Builder
	for n := r.Intn(6); n > 0; n-- {
		b.WriteString(propertyAlphabet[r.Intn(len(propertyAlphabet))])
	}
	return b.String()
}

// randomValue 生成随机嵌套的 Entity/BuildMessage 组合
func randomValue(r *rand.Rand, depth int) Value {
	if depth == 0 || r.Intn(3) == 0 {
		return Plain(randomText(r))
	}
	if r.Intn(2) == 0 {
		return Entity(randomValue(r, depth-1), propertyKinds[r.Intn(len(propertyKinds))])
	}
	n := r.Intn(3)
	pieces := make([]string, n+1)
	values := make([]Value, n)
	for i := range pieces {
		pieces[i] = randomText(r)
	}
	for i := range values {
		values[i] = randomValue(r, depth-1)
	}
	return BuildMessage(pieces, values...)
}

func TestComposition_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		f := Concat(randomValue(r, 4))

		if err := f.Validate(); err != nil {
			t.Fatalf("case %d: %v (%+v)", i, err, f)
		}
		if strings.Count(f.Text, "\n") != strings.Count(f.Text, "\r\n") {
			t.Fatalf("case %d: bare line feed in %q", i, f.Text)
		}
		if got := NormalizeNewlines(f.Text); got != f.Text {
			t.Fatalf("case %d: normalization not idempotent: %q -> %q", i, f.Text, got)
		}
		if f.Len() != utf8.RuneCountInString(f.Text) {
			t.Fatalf("case %d: Len() = %d", i, f.Len())
		}

		// 嵌入到更大的消息中后，每个实体覆盖的文本不变
		outer := BuildMessage([]string{"pre\n😀", "post"}, f)
		if len(outer.Entities) != len(f.Entities) {
			t.Fatalf("case %d: entity count changed from %d to %d", i, len(f.Entities), len(outer.Entities))
		}
		for j, s := range f.Entities {
			if got, want := outer.Covered(outer.Entities[j]), f.Covered(s); got != want {
				t.Fatalf("case %d: entity %d covers %q after embedding, want %q", i, j, got, want)
			}
		}

		// 拆分后总长度不变，且每块都合法
		total := 0
		for _, chunk := range Split(f, 3) {
			if err := chunk.Validate(); err != nil {
				t.Fatalf("case %d: chunk invalid: %v", i, err)
			}
			total += chunk.Len()
		}
		if total != f.Len() {
			t.Fatalf("case %d: split changed length from %d to %d", i, f.Len(), total)
		}
	}
}

func TestEntity_WrapsWholeValue(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		v := randomValue(r, 3)
		wrapped := Entity(v, Bold{})
		last := wrapped.Entities[len(wrapped.Entities)-1]
		if last.Offset != 0 || last.Length != wrapped.Len() {
			t.Fatalf("case %d: wrapper span = [%d, +%d), want [0, +%d)", i, last.Offset, last.Length, wrapped.Len())
		}
	}
}

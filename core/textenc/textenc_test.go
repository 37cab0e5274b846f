package textenc

import (
	"bytes"
	"math/rand"
	"testing"
	"unicode/utf8"
)

func TestDecodeJapanese(t *testing.T) {
	// CP932 bytes for こんにちは, produced by the encode direction so the
	// test does not hardcode the table.
	raw, tag, err := Encode("こんにちは", DefaultChain())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if tag != TagCP932 {
		t.Fatalf("Encode tag = %q, want %q", tag, TagCP932)
	}

	text, decTag := Decode(raw, DefaultChain())
	if text != "こんにちは" {
		t.Errorf("Decode = %q, want こんにちは", text)
	}
	if decTag != TagCP932 {
		t.Errorf("Decode tag = %q, want %q", decTag, TagCP932)
	}
}

func TestDecodeASCII(t *testing.T) {
	// Plain ASCII is valid CP932, so the first candidate wins.
	text, tag := Decode([]byte("DAY0904"), DefaultChain())
	if text != "DAY0904" {
		t.Errorf("Decode = %q, want DAY0904", text)
	}
	if tag != TagCP932 {
		t.Errorf("Decode tag = %q, want %q", tag, TagCP932)
	}
}

func TestDecodeFallback(t *testing.T) {
	// 0x81 is a Shift-JIS lead byte; followed by an invalid trail byte the
	// CP932 candidate must fail, UTF-8 must fail, and Latin-1 must accept.
	raw := []byte{0x81, 0x39}
	text, tag := Decode(raw, DefaultChain())
	if tag != TagLatin1 {
		t.Errorf("Decode tag = %q, want %q", tag, TagLatin1)
	}
	if text == "" {
		t.Error("Decode returned empty text for non-empty input")
	}
}

func TestDecodeTotality(t *testing.T) {
	// Decode must succeed for any byte slice, including empty and random.
	if text, _ := Decode(nil, DefaultChain()); text != "" {
		t.Errorf("Decode(nil) = %q, want empty", text)
	}
	if text, _ := Decode([]byte{}, DefaultChain()); text != "" {
		t.Errorf("Decode(empty) = %q, want empty", text)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		raw := make([]byte, rng.Intn(64))
		rng.Read(raw)
		text, tag := Decode(raw, DefaultChain())
		if tag == "" {
			t.Fatalf("Decode returned empty tag for %x", raw)
		}
		if !utf8.ValidString(text) {
			t.Fatalf("Decode produced invalid UTF-8 for %x", raw)
		}
	}
}

func TestDecodeEmptyChain(t *testing.T) {
	text, tag := Decode([]byte("abc"), nil)
	if text != "abc" || tag != TagLatin1 {
		t.Errorf("Decode with empty chain = (%q, %q), want (abc, latin-1)", text, tag)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"hiragana", "ありがとう"},
		{"katakana", "ハルカ"},
		{"kanji", "病院"},
		{"mixed", "第9話、DAY0904"},
		{"ascii", "SE_104.ogg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, _, err := Encode(tt.text, DefaultChain())
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			back, _ := Decode(raw, DefaultChain())
			if back != tt.text {
				t.Errorf("round trip = %q, want %q", back, tt.text)
			}
		})
	}
}

func TestEncodeFallbackReplacement(t *testing.T) {
	// Emoji are representable in neither CP932 nor Latin-1; the replacement
	// fallback must still produce bytes rather than failing.
	raw, tag, err := Encode("dialogue \U0001F389", DefaultChain())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if tag != TagLatin1 {
		t.Errorf("Encode tag = %q, want %q", tag, TagLatin1)
	}
	if len(raw) == 0 {
		t.Error("Encode returned empty bytes")
	}
	if bytes.ContainsRune(raw, 0) {
		t.Error("Encode introduced a null byte")
	}
}

func TestCanEncode(t *testing.T) {
	if !CanEncode("こんにちは") {
		t.Error("CanEncode(こんにちは) = false, want true")
	}
	if !CanEncode("plain ascii") {
		t.Error("CanEncode(plain ascii) = false, want true")
	}
	if CanEncode("café \U0001F389") {
		t.Error("CanEncode(emoji) = true, want false")
	}
}

func TestChainByTags(t *testing.T) {
	chain, err := ChainByTags([]string{"CP932", " utf-8 ", "latin-1"})
	if err != nil {
		t.Fatalf("ChainByTags failed: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("len(chain) = %d, want 3", len(chain))
	}
	if chain[0].Tag != TagCP932 || chain[1].Tag != TagUTF8 {
		t.Errorf("unexpected chain order: %v", chain)
	}

	if _, err := ChainByTags([]string{"ebcdic"}); err == nil {
		t.Error("ChainByTags accepted an unknown tag")
	}
}

func TestContainsJapanese(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"hiragana", "そうですね", true},
		{"katakana", "カケラ", true},
		{"kanji", "先生", true},
		{"cjk punctuation", "「", true},
		{"ascii", "DAY0904", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsJapanese(tt.input); got != tt.want {
				t.Errorf("ContainsJapanese(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsSpeakerName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"two kanji", "春香", true},
		{"katakana name", "ハルカ", true},
		{"single rune", "春", true},
		{"eight runes", "あいうえおかきく", true},
		{"nine runes", "あいうえおかきくけ", false},
		{"ascii", "Haruka", false},
		{"mixed script", "春H", false},
		{"cjk punctuation", "「春」", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSpeakerName(tt.input); got != tt.want {
				t.Errorf("IsSpeakerName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

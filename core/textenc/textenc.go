// Package textenc provides the legacy text encoding chain used by WSC script
// containers: CP932/Shift-JIS first, then UTF-8, then a Latin-1 fallback that
// accepts any byte sequence. Decoding is total; it never fails.
package textenc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// Encoding tags, in default priority order.
const (
	TagCP932    = "cp932"
	TagShiftJIS = "shift-jis"
	TagUTF8     = "utf-8"
	TagLatin1   = "latin-1"
)

// Candidate is one entry in an encoding priority chain.
type Candidate struct {
	Tag string
	enc encoding.Encoding // nil for UTF-8, which needs no transform
}

// DefaultChain returns the standard WSC decode priority: CP932, Shift-JIS,
// UTF-8, Latin-1. x/text implements both CP932 and Shift-JIS with the
// Windows-31J table, so the shift-jis entry is a named alias kept for parity
// with the legacy chain ordering.
func DefaultChain() []Candidate {
	return []Candidate{
		{Tag: TagCP932, enc: japanese.ShiftJIS},
		{Tag: TagShiftJIS, enc: japanese.ShiftJIS},
		{Tag: TagUTF8},
		{Tag: TagLatin1, enc: charmap.ISO8859_1},
	}
}

// ChainByTags builds a candidate chain from encoding tag names.
func ChainByTags(tags []string) ([]Candidate, error) {
	known := map[string]Candidate{
		TagCP932:    {Tag: TagCP932, enc: japanese.ShiftJIS},
		TagShiftJIS: {Tag: TagShiftJIS, enc: japanese.ShiftJIS},
		TagUTF8:     {Tag: TagUTF8},
		TagLatin1:   {Tag: TagLatin1, enc: charmap.ISO8859_1},
	}
	chain := make([]Candidate, 0, len(tags))
	for _, tag := range tags {
		c, ok := known[strings.ToLower(strings.TrimSpace(tag))]
		if !ok {
			return nil, fmt.Errorf("unknown encoding tag: %q", tag)
		}
		chain = append(chain, c)
	}
	return chain, nil
}

// tryDecode decodes raw with a single candidate. ok is false when the bytes
// are not valid in that encoding.
func (c Candidate) tryDecode(raw []byte) (string, bool) {
	if c.enc == nil {
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	}
	out, err := c.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	text := string(out)
	// x/text decoders substitute U+FFFD for invalid sequences instead of
	// returning an error. Treat any substitution as a failed candidate.
	if c.enc != charmap.ISO8859_1 && strings.ContainsRune(text, utf8.RuneError) {
		return "", false
	}
	return text, true
}

// Decode tries each candidate in order and returns the first successful
// decoding with its tag. The Latin-1 fallback accepts every byte value, so
// Decode is total as long as the chain ends with it; if a caller supplies a
// chain without a total candidate, the bytes are decoded as Latin-1 anyway.
func Decode(raw []byte, chain []Candidate) (string, string) {
	for _, c := range chain {
		if text, ok := c.tryDecode(raw); ok {
			return text, c.Tag
		}
	}
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	return string(out), TagLatin1
}

// Encode converts text to bytes using the chain in order: each candidate is
// tried strictly, and as a last resort Latin-1 with replacement is applied,
// which cannot fail. The returned tag names the encoding that produced the
// bytes.
func Encode(text string, chain []Candidate) ([]byte, string, error) {
	for _, c := range chain {
		if c.enc == nil {
			// UTF-8 is excluded from the encode direction: the container's
			// consumers expect legacy bytes, and UTF-8 would accept anything.
			continue
		}
		out, err := c.enc.NewEncoder().Bytes([]byte(text))
		if err == nil {
			return out, c.Tag, nil
		}
	}
	repl := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, err := repl.Bytes([]byte(text))
	if err != nil {
		return nil, "", fmt.Errorf("encode %q: %w", text, err)
	}
	return out, TagLatin1, nil
}

// CanEncode reports whether text is representable in CP932 without
// substitution.
func CanEncode(text string) bool {
	_, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
	return err == nil
}

package wsc

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/WscKit/core/textenc"
)

// resourcePrefix recognizes content that names a game asset or engine
// command. Used only in the encode direction, where narration must be
// re-derived from content shape.
var resourcePrefix = regexp.MustCompile(`^(DAY|BG|ST|HOS|SE|BGM|%)`)

// Resolve interprets a record's leading marker bytes. Zero markers pass the
// decoded text through as plain content; one marker strips to narration; two
// or more strip to a speaker-name candidate. A degenerate speaker name (one
// that fails the 1-8 Japanese-rune shape) stays a speaker record rather than
// being reclassified as narration.
func Resolve(rec ByteRecord, chain []textenc.Candidate) Resolved {
	markers := 0
	for markers < len(rec.Raw) && rec.Raw[markers] == MarkerByte {
		markers++
	}
	if markers == 0 {
		return Resolved{Kind: KindPlain, Text: rec.Decoded}
	}

	rest := rec.Raw[markers:]
	if len(rest) == 0 {
		return Resolved{Kind: KindPlain, Text: rec.Decoded}
	}

	text, _ := textenc.Decode(rest, chain)
	text = strings.TrimSpace(text)

	if markers == 1 {
		return Resolved{Kind: KindNarration, Text: text}
	}
	return Resolved{Kind: KindSpeaker, Text: text}
}

// EntryBinary re-encodes transcript content to its container form. The
// speaker flag comes from the transcript; narration versus plain content is
// inferred from shape, because the transcript only distinguishes speaker
// records. Japanese content that happens to start with a resource prefix is
// therefore encoded marker-less even if it originated as narration; that
// ambiguity is part of the round-trip contract.
//
// Encoding failures degrade: content that no candidate can encode collapses
// to a lone null terminator rather than aborting reconstruction.
func EntryBinary(content string, isSpeaker bool, chain []textenc.Candidate) []byte {
	if isSpeaker {
		name := strings.TrimSpace(content)
		if name == "" {
			return []byte{0}
		}
		enc, _, err := textenc.Encode(name, chain)
		if err != nil {
			return []byte{0}
		}
		out := make([]byte, 0, len(enc)+3)
		out = append(out, MarkerByte, MarkerByte)
		out = append(out, enc...)
		return append(out, 0)
	}

	if strings.TrimSpace(content) == "" {
		return []byte{0}
	}

	narration := textenc.ContainsNameRune(content) && !resourcePrefix.MatchString(content)

	enc, _, err := textenc.Encode(content, chain)
	if err != nil {
		return []byte{0}
	}
	if narration {
		out := make([]byte, 0, len(enc)+2)
		out = append(out, MarkerByte)
		out = append(out, enc...)
		return append(out, 0)
	}
	return append(enc, 0)
}

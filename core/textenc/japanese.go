package textenc

import "unicode/utf8"

// Unicode ranges recognized as Japanese script. scriptRanges covers the wider
// detection set including CJK punctuation; nameRanges is the narrower set
// valid inside a speaker name.
var scriptRanges = [][2]rune{
	{0x3000, 0x303F}, // CJK punctuation
	{0x3040, 0x309F}, // hiragana
	{0x30A0, 0x30FF}, // katakana
	{0x4E00, 0x9FFF}, // CJK ideographs
}

var nameRanges = [][2]rune{
	{0x3040, 0x30FF}, // hiragana + katakana
	{0x4E00, 0x9FFF}, // CJK ideographs
}

func inRanges(r rune, ranges [][2]rune) bool {
	for _, rg := range ranges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// ContainsJapanese reports whether s contains any rune in the Japanese
// script ranges, including CJK punctuation.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if inRanges(r, scriptRanges) {
			return true
		}
	}
	return false
}

// ContainsNameRune reports whether s contains any hiragana, katakana, or CJK
// ideograph rune. Unlike ContainsJapanese this excludes the punctuation
// block, matching the narration inference applied on re-encode.
func ContainsNameRune(s string) bool {
	for _, r := range s {
		if inRanges(r, nameRanges) {
			return true
		}
	}
	return false
}

// IsSpeakerName reports whether s has the canonical speaker-name shape:
// one to eight runes, all hiragana, katakana, or CJK ideographs.
func IsSpeakerName(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < 1 || n > 8 {
		return false
	}
	for _, r := range s {
		if !inRanges(r, nameRanges) {
			return false
		}
	}
	return true
}

package wsc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/WscKit/core/textenc"
)

// audioPattern matches audio resource names checked for extension health.
var audioPattern = regexp.MustCompile(`(?i)^(SE|BGM)_[0-9A-Za-z_.-]+$`)

// Validator runs independent checks over transcript text and parsed
// entries. Each check returns its own ValidationResult; callers compose
// them with Merge.
type Validator struct {
	chain []textenc.Candidate
}

// NewValidator returns a validator encoding through chain, or the default
// chain when chain is nil.
func NewValidator(chain []textenc.Candidate) *Validator {
	if chain == nil {
		chain = textenc.DefaultChain()
	}
	return &Validator{chain: chain}
}

// Structure validates the header/content line alternation of raw transcript
// text. The absence of any valid entry is fatal.
func (v *Validator) Structure(text string) *ValidationResult {
	result := NewValidationResult()

	lines := strings.Split(strings.TrimSpace(text), "\n")
	i := 0
	count := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if !offsetLine.MatchString(line) {
			result.AddError(fmt.Sprintf("line %d: invalid offset format %q", i+1, clip(line, 30)))
			result.AddSuggestion("use format <XXXXXXXX:XXXXXXXX>")
			i++
			continue
		}

		if i+1 >= len(lines) {
			result.AddError(fmt.Sprintf("line %d: missing content for offset %s", i+1, line))
			result.AddSuggestion("add a content line after each offset")
			break
		}
		count++
		i += 2
	}

	if count == 0 {
		result.AddError("no valid entries found")
		result.AddSuggestion("ensure the file contains offset and content line pairs")
	}
	return result
}

// Encodable checks that every entry's content is representable in CP932.
// On the strict path a failure is an error; on the lenient path it is a
// warning, and reconstruction will fall back through the encoding chain.
func (v *Validator) Encodable(entries []*Entry, strict bool) *ValidationResult {
	result := NewValidationResult()
	for i, e := range entries {
		if textenc.CanEncode(e.Content) {
			continue
		}
		msg := fmt.Sprintf("entry %d contains characters not representable in CP932", i+1)
		if strict {
			result.AddError(msg)
		} else {
			result.AddWarning(msg)
		}
		result.AddSuggestion(fmt.Sprintf("entry %d: replace characters in %q with CP932-compatible text", i+1, clip(e.Content, 50)))
	}
	return result
}

// SpeakerShapes warns about speaker entries whose content is not a 1-8 rune
// Japanese name and suggests either fixing the name or reclassifying the
// record as narration.
func (v *Validator) SpeakerShapes(entries []*Entry) *ValidationResult {
	result := NewValidationResult()
	for i, e := range entries {
		if !e.IsSpeaker {
			continue
		}
		name := strings.TrimSpace(e.Content)
		if name == "" {
			result.AddWarning(fmt.Sprintf("entry %d has an empty speaker name", i+1))
			result.AddSuggestion("provide a speaker name or remove the speaker prefix")
			continue
		}
		if !textenc.IsSpeakerName(name) {
			result.AddWarning(fmt.Sprintf("entry %d has an unusual speaker name: %q", i+1, name))
			result.AddSuggestion("speaker names should be 1-8 Japanese characters")
			result.AddSuggestion("remove the leading dot if this entry is narration")
		}
	}
	return result
}

// Categories applies per-category content heuristics: audio entries with an
// unexpected extension and short non-Japanese content likely to be filtered
// on the next decompile pass.
func (v *Validator) Categories(entries []*Entry) *ValidationResult {
	result := NewValidationResult()
	for i, e := range entries {
		if e.IsSpeaker {
			continue
		}
		content := e.Content
		if content == "" {
			result.AddWarning(fmt.Sprintf("entry %d has empty content", i+1))
			continue
		}

		if audioPattern.MatchString(content) {
			lower := strings.ToLower(content)
			if !strings.HasSuffix(lower, ".ogg") &&
				!strings.HasSuffix(lower, ".wav") &&
				!strings.HasSuffix(lower, ".mp3") &&
				!strings.HasPrefix(content, "BGM_") {
				result.AddWarning(fmt.Sprintf("entry %d: audio file may have an unusual extension: %s", i+1, content))
			}
			continue
		}

		if textenc.ContainsJapanese(content) {
			continue
		}
		if len(content) < 3 {
			result.AddWarning(fmt.Sprintf("entry %d: short content may be filtered: %q", i+1, content))
			result.AddSuggestion("expand or remove entries below the keep threshold")
		}
	}
	return result
}

// OffsetConsistency verifies entry addressing: non-increasing starts and
// overlapping ranges are errors, gaps between adjacent entries are warnings,
// and gaps over 100 bytes add a missing-data suggestion.
func (v *Validator) OffsetConsistency(entries []*Entry) *ValidationResult {
	result := NewValidationResult()
	if len(entries) == 0 {
		result.AddError("no entries to validate")
		return result
	}

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Start <= prev.Start {
			result.AddError(fmt.Sprintf(
				"offset ordering issue: entry %d (%08X) starts before entry %d (%08X)",
				i+1, cur.Start, i, prev.Start))
			result.AddSuggestion("enable offset recalculation or fix the offset values")
		}
		if cur.Start <= prev.End {
			result.AddError(fmt.Sprintf("offset overlap between entries %d and %d", i, i+1))
			result.AddSuggestion("recalculate all offsets to resolve the conflict")
		}
	}

	for i := 1; i < len(entries); i++ {
		gap := entries[i].Start - entries[i-1].End - 1
		if gap > 0 {
			result.AddWarning(fmt.Sprintf("gap of %d bytes between entries %d and %d", gap, i, i+1))
			if gap > 100 {
				result.AddSuggestion("large gap may indicate missing data")
			}
		}
	}
	return result
}

// BinaryConsistency re-encodes each entry and flags any length delta from
// the original record length. Deltas are warnings that set
// NeedsRecalculation; reconstruction handles the fallback.
func (v *Validator) BinaryConsistency(entries []*Entry) *ValidationResult {
	result := NewValidationResult()
	for i, e := range entries {
		if e.Binary == nil {
			e.Binary = EntryBinary(e.Content, e.IsSpeaker, v.chain)
		}
		expected := e.OriginalLength + 1
		if len(e.Binary) != expected {
			result.AddWarning(fmt.Sprintf(
				"entry %d: length changed from %d to %d bytes", i+1, expected, len(e.Binary)))
			result.AddSuggestion(fmt.Sprintf(
				"entry %d (%q): enable offset recalculation", i+1, clip(e.Content, 30)))
			result.NeedsRecalculation = true
		}
	}
	return result
}

// Entries is the lenient per-entry pass run before reconstruction:
// encodability and speaker shape are warnings, offset conflicts are errors.
func (v *Validator) Entries(entries []*Entry) *ValidationResult {
	result := NewValidationResult()
	result.Merge(v.Encodable(entries, false))
	result.Merge(v.SpeakerShapes(entries))
	result.Merge(v.Categories(entries))

	for i := 1; i < len(entries); i++ {
		if entries[i].Start <= entries[i-1].End {
			result.AddError(fmt.Sprintf("offset conflict between entries %d and %d", i, i+1))
			result.NeedsRecalculation = true
		}
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

// Comprehensive runs every check: structure over the raw text, then the
// strict per-entry checks, offset consistency, and binary consistency over
// the parsed entries.
func (v *Validator) Comprehensive(text string, entries []*Entry) *ValidationResult {
	result := NewValidationResult()
	result.Merge(v.Structure(text))
	if len(entries) > 0 {
		result.Merge(v.Encodable(entries, true))
		result.Merge(v.SpeakerShapes(entries))
		result.Merge(v.Categories(entries))
		result.Merge(v.OffsetConsistency(entries))
		result.Merge(v.BinaryConsistency(entries))
	}
	return result
}

// clip truncates s to at most n runes for use in messages.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

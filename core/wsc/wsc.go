package wsc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/WscKit/core/textenc"
)

// ErrInvalidTranscript is returned by Encode when structural parse errors or
// fatal validation findings prevent reconstruction.
var ErrInvalidTranscript = errors.New("invalid transcript")

// Codec bundles an encoding chain and classifier rules. The zero value is
// not usable; construct with NewCodec or NewCodecWith.
type Codec struct {
	chain      []textenc.Candidate
	classifier *Classifier
	validator  *Validator
}

// NewCodec returns a codec with the default encoding chain and keep rules.
func NewCodec() *Codec {
	return NewCodecWith(nil, nil)
}

// NewCodecWith returns a codec with a custom encoding chain and rules.
// Nil arguments select the defaults.
func NewCodecWith(chain []textenc.Candidate, rules *Rules) *Codec {
	if chain == nil {
		chain = textenc.DefaultChain()
	}
	return &Codec{
		chain:      chain,
		classifier: NewClassifier(rules),
		validator:  NewValidator(chain),
	}
}

// Decode converts a WSC container into transcript text. Records the
// classifier drops are omitted silently; Decode never fails on content.
func (c *Codec) Decode(data []byte) string {
	var b strings.Builder
	for _, rec := range ExtractRecords(data, c.chain) {
		if !c.classifier.Meaningful(rec.Decoded, rec.Raw) {
			continue
		}
		res := Resolve(rec, c.chain)
		renderRecord(&b, rec.Start, rec.End, res.Text, res.Kind == KindSpeaker)
	}
	return b.String()
}

// Encode reconstructs a WSC container from transcript text. It returns nil
// bytes and a non-nil error when the transcript has structural parse errors
// or fatal validation findings; otherwise the binary is returned together
// with the merged findings. With preserveOffsets set, original offsets are
// kept when every entry's re-encoded length is unchanged and recomputed for
// the whole file otherwise.
func (c *Codec) Encode(text string, preserveOffsets bool) ([]byte, *ValidationResult, error) {
	entries, parseResult := ParseTranscript(text)
	if !parseResult.IsValid {
		return nil, parseResult, fmt.Errorf("%w: %d parse errors", ErrInvalidTranscript, len(parseResult.Errors))
	}

	entryResult := c.validator.Entries(entries)
	if !entryResult.IsValid {
		parseResult.Merge(entryResult)
		return nil, parseResult, fmt.Errorf("%w: %d validation errors", ErrInvalidTranscript, len(entryResult.Errors))
	}

	result := NewValidationResult()
	result.Merge(parseResult)
	result.Merge(entryResult)

	bin, preserved := Reconstruct(entries, c.chain, preserveOffsets)
	result.AddSuggestion(fmt.Sprintf("recompiled %d entries", len(entries)))
	if preserveOffsets && !preserved {
		result.AddWarning("offsets were recalculated due to content length changes")
		result.NeedsRecalculation = true
	}
	return bin, result, nil
}

// Validate runs the comprehensive validation pass over transcript text
// without reconstructing a binary.
func (c *Codec) Validate(text string) *ValidationResult {
	entries, parseResult := ParseTranscript(text)
	result := c.validator.Comprehensive(text, entries)
	result.NeedsRecalculation = result.NeedsRecalculation || parseResult.NeedsRecalculation
	return result
}

// Decode converts a WSC container to transcript text with default settings.
func Decode(data []byte) string {
	return NewCodec().Decode(data)
}

// Encode reconstructs a WSC container from transcript text with default
// settings.
func Encode(text string, preserveOffsets bool) ([]byte, *ValidationResult, error) {
	return NewCodec().Encode(text, preserveOffsets)
}

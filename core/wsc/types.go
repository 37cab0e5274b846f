// Package wsc implements the round-trip codec for WSC visual-novel script
// containers: a flat sequence of null-terminated byte records with no header
// and no length table. The decode direction produces an offset-annotated text
// transcript; the encode direction reconstructs a binary container from an
// edited transcript, preserving original byte offsets when every record's
// re-encoded length is unchanged and recomputing all offsets otherwise.
package wsc

// MarkerByte prefixes dialogue-related records. One marker signals
// narration, two or more signal a speaker name.
const MarkerByte = 0x0F

// ByteRecord is a single null-delimited run found during extraction.
// Offsets are absolute buffer positions: Start is the first content byte,
// End the position of the terminating null (exclusive end of content).
// Records are created once per extraction pass and never mutated.
type ByteRecord struct {
	Start    int
	End      int
	Raw      []byte
	Decoded  string
	Encoding string
}

// RecordKind classifies a marker-resolved record.
type RecordKind int

const (
	// KindPlain is content without a marker prefix: resource identifiers,
	// audio filenames, engine commands.
	KindPlain RecordKind = iota
	// KindNarration is a record with a single marker byte.
	KindNarration
	// KindSpeaker is a record with two or more marker bytes.
	KindSpeaker
)

func (k RecordKind) String() string {
	switch k {
	case KindNarration:
		return "narration"
	case KindSpeaker:
		return "speaker"
	default:
		return "plain"
	}
}

// Resolved is the outcome of marker resolution on a ByteRecord.
type Resolved struct {
	Kind RecordKind
	Text string
}

// Entry is the transcript-level unit that survives round-tripping.
// End is the inclusive end of the entry's binary including its null
// terminator, which equals the position of the terminator in the source
// buffer; OriginalLength is End-Start, the content byte count without the
// terminator.
type Entry struct {
	Start          int
	End            int
	Content        string
	IsSpeaker      bool
	OriginalLength int

	// Binary is populated by reconstruction, never by parsing. Once
	// computed it is owned by the entry and regenerated wholesale when
	// content changes.
	Binary []byte

	Warnings []string
	Errors   []string
}

// ValidationResult aggregates findings from one validation pass. Instances
// are merged by concatenating their lists and recomputing IsValid.
type ValidationResult struct {
	IsValid            bool
	Errors             []string
	Warnings           []string
	Suggestions        []string
	NeedsRecalculation bool
}

// NewValidationResult returns a result with no findings. A result with no
// errors is valid.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}

// AddError records a fatal finding and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// AddWarning records a non-fatal finding.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddSuggestion records a repair hint.
func (r *ValidationResult) AddSuggestion(msg string) {
	r.Suggestions = append(r.Suggestions, msg)
}

// Merge concatenates other's findings into r and recomputes IsValid.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Suggestions = append(r.Suggestions, other.Suggestions...)
	if other.NeedsRecalculation {
		r.NeedsRecalculation = true
	}
	r.IsValid = len(r.Errors) == 0
}

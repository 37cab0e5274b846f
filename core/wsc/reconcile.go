package wsc

import "github.com/FocuswithJustin/WscKit/core/textenc"

// preserveOriginalOffsets re-encodes every entry and reports whether all
// binaries match their original lengths (content bytes plus the null
// terminator). When it returns true the original absolute offsets remain
// valid and are left untouched.
func preserveOriginalOffsets(entries []*Entry, chain []textenc.Candidate) bool {
	ok := true
	for _, e := range entries {
		e.Binary = EntryBinary(e.Content, e.IsSpeaker, chain)
		if len(e.Binary) != e.OriginalLength+1 {
			ok = false
		}
	}
	return ok
}

// recalculateOffsets re-encodes every entry and assigns offsets
// sequentially from zero. End is the inclusive last byte of the entry's
// binary, terminator included.
func recalculateOffsets(entries []*Entry, chain []textenc.Candidate) {
	running := 0
	for _, e := range entries {
		e.Binary = EntryBinary(e.Content, e.IsSpeaker, chain)
		e.Start = running
		e.End = running + len(e.Binary) - 1
		running += len(e.Binary)
	}
}

// Reconstruct builds the container binary from entries in order. With
// preserve set, original offsets are kept only when every entry's re-encoded
// length is unchanged; a single mismatch abandons preservation for the whole
// file, because the container has no length table and one shifted length
// invalidates every subsequent absolute offset. The returned flag reports
// whether the original offsets survived.
func Reconstruct(entries []*Entry, chain []textenc.Candidate, preserve bool) ([]byte, bool) {
	preserved := false
	if preserve {
		preserved = preserveOriginalOffsets(entries, chain)
	}
	if !preserved {
		recalculateOffsets(entries, chain)
	}

	total := 0
	for _, e := range entries {
		total += len(e.Binary)
	}
	out := make([]byte, 0, total)
	for _, e := range entries {
		out = append(out, e.Binary...)
	}
	return out, preserved
}

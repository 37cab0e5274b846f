package wsc

import "github.com/FocuswithJustin/WscKit/core/textenc"

// ExtractRecords splits data into maximal null-terminated runs in a single
// left-to-right pass. Every byte in [Start, End) is non-zero; the byte at End
// is the terminating null, or End equals len(data) for an unterminated tail.
// Consecutive nulls produce no record. Extraction never fails: every record
// is decoded through the chain, which is total.
func ExtractRecords(data []byte, chain []textenc.Candidate) []ByteRecord {
	var records []ByteRecord
	pos := 0
	for pos < len(data) {
		if data[pos] == 0 {
			pos++
			continue
		}
		start := pos
		for pos < len(data) && data[pos] != 0 {
			pos++
		}
		raw := data[start:pos]
		decoded, tag := textenc.Decode(raw, chain)
		records = append(records, ByteRecord{
			Start:    start,
			End:      pos,
			Raw:      raw,
			Decoded:  decoded,
			Encoding: tag,
		})
		pos++
	}
	return records
}

package wsc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// offsetLine is the exact transcript header shape: eight hex digits, a
// colon, eight hex digits, in angle brackets.
var offsetLine = regexp.MustCompile(`^<([0-9A-Fa-f]{8}):([0-9A-Fa-f]{8})>$`)

// sanitizeContent normalizes content for a single transcript line: carriage
// returns are removed and newlines become the literal two-character sequence.
func sanitizeContent(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", `\n`)
}

// renderRecord writes one transcript block: the offset header, the content
// line, and a trailing blank line.
func renderRecord(b *strings.Builder, start, end int, content string, isSpeaker bool) {
	fmt.Fprintf(b, "<%08X:%08X>\n", start, end)
	if isSpeaker {
		b.WriteString(".")
	}
	b.WriteString(sanitizeContent(content))
	b.WriteString("\n\n")
}

// RenderEntries renders entries into the canonical transcript format.
func RenderEntries(entries []*Entry) string {
	var b strings.Builder
	for _, e := range entries {
		renderRecord(&b, e.Start, e.End, e.Content, e.IsSpeaker)
	}
	return b.String()
}

// ParseTranscript parses transcript text into entries. Lines are read in
// header/content pairs with blank lines skipped between records. A header
// line that fails the shape check produces a structural error and is
// skipped; parsing continues with subsequent lines. Content lines have the
// literal newline escape restored, and a leading dot longer than one
// character marks a speaker record with the dot stripped.
//
// Ordering violations between parsed offsets are warnings, not errors,
// and set NeedsRecalculation on the result.
func ParseTranscript(text string) ([]*Entry, *ValidationResult) {
	result := NewValidationResult()
	var entries []*Entry

	lines := strings.Split(strings.TrimSpace(text), "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		m := offsetLine.FindStringSubmatch(line)
		if m == nil {
			result.AddError(fmt.Sprintf("line %d: invalid offset format: %s", i+1, clip(line, 50)))
			result.AddSuggestion("use format <XXXXXXXX:XXXXXXXX>")
			i++
			continue
		}

		start, _ := strconv.ParseInt(m[1], 16, 64)
		end, _ := strconv.ParseInt(m[2], 16, 64)

		content := ""
		if i+1 < len(lines) {
			content = strings.TrimSpace(lines[i+1])
		}

		isSpeaker := strings.HasPrefix(content, ".") && len(content) > 1
		if isSpeaker {
			content = content[1:]
		}
		content = strings.ReplaceAll(content, `\n`, "\n")

		entries = append(entries, &Entry{
			Start:          int(start),
			End:            int(end),
			Content:        content,
			IsSpeaker:      isSpeaker,
			OriginalLength: int(end - start),
		})
		i += 2
	}

	if len(entries) == 0 {
		result.AddError("no valid entries found")
		result.AddSuggestion("ensure the file contains <start:end> offset lines followed by content")
		return entries, result
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Start <= entries[i-1].Start {
			result.AddWarning(fmt.Sprintf(
				"offset ordering issue: entry %d starts before entry %d", i+1, i))
			result.NeedsRecalculation = true
		}
	}

	return entries, result
}

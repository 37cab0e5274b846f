package wsc

import (
	"reflect"
	"strings"
	"testing"
)

func TestRenderEntries(t *testing.T) {
	entries := []*Entry{
		{Start: 0x0, End: 0x7, Content: "DAY0904"},
		{Start: 0x8, End: 0xE, Content: "春香", IsSpeaker: true},
	}

	got := RenderEntries(entries)
	want := "<00000000:00000007>\nDAY0904\n\n<00000008:0000000E>\n.春香\n\n"
	if got != want {
		t.Errorf("RenderEntries = %q, want %q", got, want)
	}
}

func TestRenderEscapesNewlines(t *testing.T) {
	entries := []*Entry{
		{Start: 0, End: 10, Content: "line one\r\nline two"},
	}
	got := RenderEntries(entries)
	if strings.Contains(got, "\r") {
		t.Error("render must remove carriage returns")
	}
	if !strings.Contains(got, `line one\nline two`) {
		t.Errorf("render must escape newlines: %q", got)
	}
}

func TestParseTranscript(t *testing.T) {
	text := "<00000000:00000007>\nDAY0904\n\n<00000008:0000000E>\n.春香\n\n<00000010:00000020>\nfirst\\nsecond\n"

	entries, result := ParseTranscript(text)
	if !result.IsValid {
		t.Fatalf("parse failed: %v", result.Errors)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	if entries[0].Content != "DAY0904" || entries[0].IsSpeaker {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Content != "春香" || !entries[1].IsSpeaker {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if entries[2].Content != "first\nsecond" {
		t.Errorf("entry 2 content = %q, want embedded newline restored", entries[2].Content)
	}
	if entries[0].OriginalLength != 7 {
		t.Errorf("entry 0 OriginalLength = %d, want 7", entries[0].OriginalLength)
	}
}

func TestParseMalformedHeaderContinues(t *testing.T) {
	text := "<0000:0007>\nbad header\n\n<00000000:00000007>\nDAY0904\n"

	entries, result := ParseTranscript(text)
	if result.IsValid {
		t.Error("malformed header must produce a structural error")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected at least one error")
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1 (parsing continues after bad line)", len(entries))
	}
	if entries[0].Content != "DAY0904" {
		t.Errorf("surviving entry = %+v", entries[0])
	}
}

func TestParseEmptyTranscript(t *testing.T) {
	entries, result := ParseTranscript("")
	if result.IsValid {
		t.Error("empty transcript must be invalid")
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestParseOrderingWarning(t *testing.T) {
	text := "<00000010:00000017>\nsecond entry\n\n<00000000:00000007>\nfirst entry\n"

	_, result := ParseTranscript(text)
	if !result.IsValid {
		t.Fatalf("ordering issues are warnings, not errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected an ordering warning")
	}
	if !result.NeedsRecalculation {
		t.Error("ordering violation must set NeedsRecalculation")
	}
}

func TestParseDotAloneIsNotSpeaker(t *testing.T) {
	text := "<00000000:00000001>\n.\n"
	entries, result := ParseTranscript(text)
	if !result.IsValid || len(entries) != 1 {
		t.Fatalf("parse failed: %v", result.Errors)
	}
	if entries[0].IsSpeaker {
		t.Error("a lone dot must not mark a speaker record")
	}
}

// TestTranscriptIdempotence verifies parse(render(entries)) == entries for
// well-formed entry lists.
func TestTranscriptIdempotence(t *testing.T) {
	entries := []*Entry{
		{Start: 0x00, End: 0x07, Content: "DAY0904", OriginalLength: 7},
		{Start: 0x08, End: 0x0E, Content: "春香", IsSpeaker: true, OriginalLength: 6},
		{Start: 0x0F, End: 0x2A, Content: "そう、あの日。\n二行目。", OriginalLength: 27},
		{Start: 0x2B, End: 0x36, Content: "SE_104.ogg", OriginalLength: 11},
	}

	parsed, result := ParseTranscript(RenderEntries(entries))
	if !result.IsValid {
		t.Fatalf("parse failed: %v", result.Errors)
	}
	if len(parsed) != len(entries) {
		t.Fatalf("len(parsed) = %d, want %d", len(parsed), len(entries))
	}
	for i := range entries {
		want := *entries[i]
		got := *parsed[i]
		if !reflect.DeepEqual(got, want) {
			t.Errorf("entry %d = %+v, want %+v", i, got, want)
		}
	}
}

package wsc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/FocuswithJustin/WscKit/core/textenc"
)

// TestDecodeScenario runs the canonical container: a resource id, a
// two-marker speaker name, a single-marker narration line, and an audio
// file. All four must survive into the transcript with the right shapes.
func TestDecodeScenario(t *testing.T) {
	data := referenceContainer(t)
	transcript := Decode(data)

	entries, result := ParseTranscript(transcript)
	if !result.IsValid {
		t.Fatalf("transcript does not re-parse: %v", result.Errors)
	}
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4\ntranscript:\n%s", len(entries), transcript)
	}

	if entries[0].Content != "DAY0904" || entries[0].IsSpeaker {
		t.Errorf("entry 0 = %+v, want resource DAY0904", entries[0])
	}
	if entries[1].Content != "春香" || !entries[1].IsSpeaker {
		t.Errorf("entry 1 = %+v, want speaker 春香", entries[1])
	}
	if entries[2].Content != "そう、あの日。" || entries[2].IsSpeaker {
		t.Errorf("entry 2 = %+v, want narration", entries[2])
	}
	if entries[3].Content != "SE_104.ogg" || entries[3].IsSpeaker {
		t.Errorf("entry 3 = %+v, want audio SE_104.ogg", entries[3])
	}

	if !strings.Contains(transcript, ".春香") {
		t.Error("speaker entry must be dot-prefixed in the transcript")
	}
}

// TestScenarioRoundTrip re-encodes the scenario transcript with recomputed
// offsets and checks that the binary has four null terminators whose
// null-split segments decode back to the same four strings.
func TestScenarioRoundTrip(t *testing.T) {
	transcript := Decode(referenceContainer(t))

	bin, result, err := Encode(transcript, false)
	if err != nil {
		t.Fatalf("Encode failed: %v (%v)", err, result.Errors)
	}

	if n := bytes.Count(bin, []byte{0}); n != 4 {
		t.Fatalf("null terminators = %d, want 4", n)
	}

	var decoded []string
	for _, seg := range bytes.Split(bin, []byte{0}) {
		if len(seg) == 0 {
			continue
		}
		seg = bytes.TrimLeft(seg, string(rune(MarkerByte)))
		text, _ := textenc.Decode(seg, textenc.DefaultChain())
		decoded = append(decoded, text)
	}

	want := []string{"DAY0904", "春香", "そう、あの日。", "SE_104.ogg"}
	if len(decoded) != len(want) {
		t.Fatalf("decoded segments = %v, want %v", decoded, want)
	}
	for i := range want {
		if decoded[i] != want[i] {
			t.Errorf("segment %d = %q, want %q", i, decoded[i], want[i])
		}
	}
}

// TestGarbageFiltering checks that single-character tokens and short
// low-printable tokens never reach the transcript.
func TestGarbageFiltering(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("X\x00")            // single character
	buf.Write([]byte{1, 2, 'a', 0})     // low printable ratio
	buf.WriteString("DAY0904\x00")      // kept
	buf.Write([]byte{5, 6, 7, 8, 9, 0}) // control garbage

	transcript := Decode(buf.Bytes())
	entries, result := ParseTranscript(transcript)
	if !result.IsValid {
		t.Fatalf("parse failed: %v", result.Errors)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1:\n%s", len(entries), transcript)
	}
	if entries[0].Content != "DAY0904" {
		t.Errorf("surviving entry = %q, want DAY0904", entries[0].Content)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	data := referenceContainer(t)
	if Decode(data) != Decode(data) {
		t.Error("repeated decode of the same buffer must be identical")
	}
}

func TestEncodePreservesUnchanged(t *testing.T) {
	data := referenceContainer(t)
	transcript := Decode(data)

	bin, result, err := Encode(transcript, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(bin, data) {
		t.Errorf("unchanged transcript must reproduce the source container\n got: %x\nwant: %x", bin, data)
	}
	if result.NeedsRecalculation {
		t.Error("unchanged content must not need recalculation")
	}
}

func TestEncodeStructuralFailure(t *testing.T) {
	bin, result, err := Encode("completely wrong\n", true)
	if err == nil {
		t.Fatal("structural errors must fail the encode")
	}
	if !errors.Is(err, ErrInvalidTranscript) {
		t.Errorf("err = %v, want ErrInvalidTranscript", err)
	}
	if bin != nil {
		t.Error("no binary may be produced on failure")
	}
	if result == nil || result.IsValid {
		t.Error("result must carry the structural errors")
	}
}

func TestEncodeOverlapFailure(t *testing.T) {
	text := "<00000000:00000010>\nfirst\n\n<00000005:00000020>\nsecond\n"
	_, result, err := Encode(text, true)
	if err == nil {
		t.Fatal("overlapping offsets must fail the encode")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "conflict") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an offset conflict error, got %v", result.Errors)
	}
}

func TestValidateReportsAll(t *testing.T) {
	text := "<00000000:00000007>\nDAY0904\n\n<00000100:00000110>\ncafé \U0001F389 content\n"
	c := NewCodec()
	result := c.Validate(text)
	if result.IsValid {
		t.Error("unencodable content must be a strict validation error")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected gap warnings")
	}
}

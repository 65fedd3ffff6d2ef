package extract

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestExtractFootnotes_WitnessReference(t *testing.T) {
	lines := []string{"12 P-0123: witness statement, para. 45"}
	fns := ExtractFootnotes(lines, 3, DefaultPatternSet())

	if len(fns) != 1 {
		t.Fatalf("expected 1 footnote, got %d", len(fns))
	}
	fn := fns[0]
	if fn.Number != "12" {
		t.Errorf("expected number 12, got %q", fn.Number)
	}
	if fn.Page != 3 {
		t.Errorf("expected page 3, got %d", fn.Page)
	}
	if fn.Content != "P-0123: witness statement, para. 45" {
		t.Errorf("unexpected content %q", fn.Content)
	}
	if fn.DetectionMethod != DetectionTextLayer {
		t.Errorf("expected detection method %q, got %q", DetectionTextLayer, fn.DetectionMethod)
	}
	// Witness reference (0.4) + paragraph reference (0.1).
	if math.Abs(fn.Confidence-0.5) > 1e-9 {
		t.Errorf("expected confidence 0.5, got %v", fn.Confidence)
	}
}

func TestExtractFootnotes_Idempotent(t *testing.T) {
	lines := []string{
		"101 T-045, p. 12, lines 3-9",
		"continuation of the transcript citation above",
		"102 ICC-01/14-01/18-T-100-Red, para. 7",
	}
	first := ExtractFootnotes(lines, 9, DefaultPatternSet())
	second := ExtractFootnotes(lines, 9, DefaultPatternSet())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs on identical input differ:\n%v\n%v", first, second)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 footnotes, got %d", len(first))
	}
}

func TestExtractFootnotes_ContinuationLines(t *testing.T) {
	lines := []string{
		"7 T-201, p. 44",
		"with further discussion of the testimony", // > 10 chars, appended
		"ok", // short noise, ignored
	}
	fns := ExtractFootnotes(lines, 1, DefaultPatternSet())

	if len(fns) != 1 {
		t.Fatalf("expected 1 footnote, got %d", len(fns))
	}
	want := "T-201, p. 44 with further discussion of the testimony"
	if fns[0].Content != want {
		t.Errorf("expected content %q, got %q", want, fns[0].Content)
	}
}

func TestExtractFootnotes_InvalidCandidateResetsState(t *testing.T) {
	lines := []string{
		"55 T-300, para. 12",
		"88 short", // numbered but invalid: closes 55, opens nothing
		"this longer line must not attach to footnote 55",
	}
	fns := ExtractFootnotes(lines, 2, DefaultPatternSet())

	if len(fns) != 1 {
		t.Fatalf("expected 1 footnote, got %d", len(fns))
	}
	if fns[0].Number != "55" {
		t.Errorf("expected footnote 55, got %q", fns[0].Number)
	}
	if strings.Contains(fns[0].Content, "must not attach") {
		t.Errorf("continuation after invalid candidate leaked into prior footnote: %q", fns[0].Content)
	}
}

func TestExtractFootnotes_SkipsHeaders(t *testing.T) {
	lines := []string{
		"No. ICC-01/14-01/18 12/105 23 March 2021",
		"3/105",
		"201 CAR-OTP-0001-1234, p. 3",
	}
	fns := ExtractFootnotes(lines, 5, DefaultPatternSet())

	if len(fns) != 1 {
		t.Fatalf("expected 1 footnote, got %d", len(fns))
	}
	if fns[0].Number != "201" {
		t.Errorf("expected footnote 201, got %q", fns[0].Number)
	}
}

func TestIsValidFootnote_LengthFloor(t *testing.T) {
	ps := DefaultPatternSet()
	// Exactly 9 characters, even with a citation prefix, is always rejected.
	content := "P-12: abc"
	if len(content) != 9 {
		t.Fatalf("test content must be 9 chars, got %d", len(content))
	}
	if isValidFootnote(content, ps) {
		t.Error("expected 9-char content to fail the length floor")
	}
}

func TestIsValidFootnote_DateExclusionWins(t *testing.T) {
	ps := DefaultPatternSet()
	// Contains both a citation (T-045) and a year: the date exclusion takes
	// precedence over the citation match.
	if isValidFootnote("T-045 hearing of 23 February 1975", ps) {
		t.Error("expected date-bearing content to be rejected despite citation")
	}
}

func TestIsValidFootnote_RequiresCitation(t *testing.T) {
	ps := DefaultPatternSet()
	if isValidFootnote("this is long enough but cites nothing legal at all", ps) {
		t.Error("expected content without citation patterns to be rejected")
	}
	if !isValidFootnote("See Article 28 of the Statute", ps) {
		t.Error("expected article reference to be accepted")
	}
}

func TestFootnoteConfidence_StackingAndBounds(t *testing.T) {
	ps := DefaultPatternSet()

	// Witness + transcript references stack to at least 0.7.
	score := footnoteConfidence("P-0800: see T-112", ps)
	if score < 0.7 {
		t.Errorf("expected witness+transcript to score >= 0.7, got %v", score)
	}

	// Everything at once stays capped at 1.0.
	loaded := "P-0800: T-112 CAR-OTP-0001 ICC-01/14 para. 4 p. 9 Article 28 Rule 68 " +
		strings.Repeat("x", 40)
	if s := footnoteConfidence(loaded, ps); s > 1.0 {
		t.Errorf("expected confidence capped at 1.0, got %v", s)
	}

	for _, content := range []string{"", "T-1", "no citations here", loaded} {
		s := footnoteConfidence(content, ps)
		if s < 0 || s > 1 {
			t.Errorf("confidence out of bounds for %q: %v", content, s)
		}
	}
}

func TestFootnoteConfidence_LengthBonus(t *testing.T) {
	ps := DefaultPatternSet()
	short := footnoteConfidence("Rule 68 applied", ps)
	long := footnoteConfidence("Rule 68 applied "+strings.Repeat("with extensive reasoning ", 3), ps)
	if long <= short {
		t.Errorf("expected length bonus: short=%v long=%v", short, long)
	}
}

func TestExtractFootnotes_FlushesOpenFootnoteAtPageEnd(t *testing.T) {
	lines := []string{"44 CAR-D29-0002-0419, p. 12"}
	fns := ExtractFootnotes(lines, 10, DefaultPatternSet())
	if len(fns) != 1 {
		t.Fatalf("expected trailing open footnote to be emitted, got %d", len(fns))
	}
}

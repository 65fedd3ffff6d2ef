package extract

import (
	"strings"
	"testing"
)

// longBody pads content comfortably past the 50-character floor.
func longBody(prefix string) string {
	return prefix + " the Chamber finds that the accused bears responsibility for the conduct charged"
}

func TestExtractParagraphs_ClosesOnNextNumber(t *testing.T) {
	lines := []string{
		"45. The Chamber finds that the accused bears individual criminal responsibility",
		"46. " + longBody("Turning to the next count,"),
	}
	paras := ExtractParagraphs(lines, 7, DefaultPatternSet())

	if len(paras) != 2 {
		t.Fatalf("expected paragraphs 45 and 46, got %d paragraphs", len(paras))
	}
	p := paras[0]
	if p.Number != "45" {
		t.Errorf("expected number 45, got %q", p.Number)
	}
	if p.Page != 7 {
		t.Errorf("expected page 7, got %d", p.Page)
	}
	if p.SectionType != SectionMainText {
		t.Errorf("expected section %q, got %q", SectionMainText, p.SectionType)
	}
	if p.ExtractionMethod != ExtractionHybridOCR {
		t.Errorf("expected method %q, got %q", ExtractionHybridOCR, p.ExtractionMethod)
	}
	if strings.Contains(p.Content, "46.") {
		t.Errorf("paragraph 46 leaked into 45: %q", p.Content)
	}
	if paras[1].Number != "46" {
		t.Errorf("expected second paragraph 46, got %q", paras[1].Number)
	}
}

func TestExtractParagraphs_LastParagraphFlushedAtPageEnd(t *testing.T) {
	lines := []string{
		"99. " + longBody("On the evidence before it,"),
		"which continued on a second line of OCR output",
	}
	paras := ExtractParagraphs(lines, 12, DefaultPatternSet())

	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	if !strings.Contains(paras[0].Content, "second line") {
		t.Errorf("continuation line missing from content: %q", paras[0].Content)
	}
	if paras[0].EndLine != 2 {
		t.Errorf("expected end line 2, got %d", paras[0].EndLine)
	}
}

func TestExtractParagraphs_NoDuplicateNumbersPerPage(t *testing.T) {
	lines := []string{
		"45. " + longBody("First occurrence of the paragraph,"),
		"45. " + longBody("OCR re-read the same printed number,"),
		"46. " + longBody("A different paragraph follows,"),
	}
	paras := ExtractParagraphs(lines, 3, DefaultPatternSet())

	seen := make(map[string]bool)
	for _, p := range paras {
		if seen[p.Number] {
			t.Fatalf("duplicate paragraph number %q emitted on one page", p.Number)
		}
		seen[p.Number] = true
	}
	if len(paras) != 2 {
		t.Fatalf("expected paragraphs 45 and 46, got %d", len(paras))
	}
	if !strings.Contains(paras[0].Content, "First occurrence") {
		t.Errorf("first occurrence did not win: %q", paras[0].Content)
	}
}

func TestExtractParagraphs_DuplicateSuppressesAccumulation(t *testing.T) {
	lines := []string{
		"45. " + longBody("First occurrence of the paragraph,"),
		"46. " + longBody("Second paragraph on the page,"),
		"45. " + longBody("Late duplicate that must be discarded,"),
		"trailing text that belongs to nobody once accumulation is suppressed",
	}
	paras := ExtractParagraphs(lines, 3, DefaultPatternSet())

	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paras))
	}
	for _, p := range paras {
		if strings.Contains(p.Content, "Late duplicate") || strings.Contains(p.Content, "belongs to nobody") {
			t.Errorf("suppressed duplicate content leaked: %q", p.Content)
		}
	}
}

func TestExtractParagraphs_HighNumberFallback(t *testing.T) {
	// Narrow the primary patterns so the 4-digit number is only reachable
	// through the high-number fallback set.
	cfg := DefaultPatternConfig()
	cfg.ParagraphNumbers = []string{`^(\d{1,2})\.\s+`}
	ps, err := NewPatternSet(cfg)
	if err != nil {
		t.Fatalf("compile patterns: %v", err)
	}

	lines := []string{
		"4848. " + longBody("For the reasons set out above,"),
	}
	paras := ExtractParagraphs(lines, 900, ps)

	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	if paras[0].Number != "4848" {
		t.Errorf("expected number 4848, got %q", paras[0].Number)
	}
}

func TestExtractParagraphs_OrphanLinesDropped(t *testing.T) {
	lines := []string{
		"stray OCR text before any paragraph number appears on the page",
		"45. " + longBody("The paragraph proper begins here,"),
	}
	paras := ExtractParagraphs(lines, 2, DefaultPatternSet())

	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	if strings.Contains(paras[0].Content, "stray OCR text") {
		t.Errorf("orphan line leaked into paragraph: %q", paras[0].Content)
	}
}

func TestIsValidParagraph(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "below length floor",
			content: "The Chamber finds.",
			want:    false,
		},
		{
			name:    "keyword accepts regardless of word count",
			content: "Chamber-findings-on-responsibility: " + strings.Repeat("x", 20),
			want:    true,
		},
		{
			name:    "no keyword but ten words",
			content: "one two three four five six seven eight nine ten padding padding",
			want:    true,
		},
		{
			name:    "no keyword and too few words",
			content: "averyverylongsingletokenwithoutanylegalmeaningatallxxxxxxxxxx yes",
			want:    false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isValidParagraph(tc.content); got != tc.want {
				t.Errorf("isValidParagraph(%q) = %v, want %v", tc.content, got, tc.want)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	// 10 words * 1.3 = 13.
	content := strings.Repeat("word ", 10)
	if got := estimateTokens(strings.TrimSpace(content)); got != 13 {
		t.Errorf("expected 13 tokens, got %d", got)
	}
	if got := estimateTokens(""); got != 0 {
		t.Errorf("expected 0 tokens for empty content, got %d", got)
	}
}

func TestExtractFootnoteReferences(t *testing.T) {
	refs := extractFootnoteReferences("see footnote 12 and footnote 345, but not 6789")
	want := map[string]bool{"12": true, "345": true}
	for _, r := range refs {
		if r == "6789" {
			t.Errorf("four-digit run captured as footnote reference")
		}
	}
	for w := range want {
		found := false
		for _, r := range refs {
			if r == w {
				found = true
			}
		}
		if !found {
			t.Errorf("expected reference %q in %v", w, refs)
		}
	}
}

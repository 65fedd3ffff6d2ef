package extract

import (
	"math"
	"regexp"
	"strings"
)

// ExtractionHybridOCR marks paragraphs recognized from header-filtered OCR
// lines.
const ExtractionHybridOCR = "hybrid_ocr"

// SectionMainText is the default section tag for recognized paragraphs.
const SectionMainText = "main_text"

// LegalParagraph is a validated numbered paragraph for one page.
type LegalParagraph struct {
	Number             string   `json:"number"`
	Content            string   `json:"content"`
	Page               int      `json:"page"`
	SectionType        string   `json:"section_type"`
	TokenCount         int      `json:"token_count"`
	FootnoteReferences []string `json:"footnote_references"`
	StartLine          int      `json:"start_line"`
	EndLine            int      `json:"end_line"`
	ExtractionMethod   string   `json:"extraction_method"`
	Confidence         float64  `json:"confidence"`
}

// footnoteRefPattern captures standalone 1-3 digit runs as possible footnote
// citations. Deliberately coarse; overcapture is expected and accepted.
var footnoteRefPattern = regexp.MustCompile(`\b\d{1,3}\b`)

// paragraphKeywords admit recognizably legal prose regardless of word count.
var paragraphKeywords = []string{"chamber", "court", "evidence", "statute", "article"}

// ExtractParagraphs scans header-filtered OCR lines for one page and returns
// the validated paragraphs in order of appearance.
//
// A paragraph number is consumed at most once per page: the first occurrence
// wins and later duplicates are discarded, not merged. This stops the OCR
// engine re-reading the same printed number from producing duplicate records.
func ExtractParagraphs(lines []string, page int, ps *PatternSet) []LegalParagraph {
	var paragraphs []LegalParagraph
	var buffer []string
	currentNum := ""
	seen := make(map[string]bool)

	flush := func(lineNum int) {
		if len(buffer) == 0 || currentNum == "" || seen[currentNum] {
			return
		}
		content := strings.TrimSpace(strings.Join(buffer, " "))
		if !isValidParagraph(content) {
			return
		}
		paragraphs = append(paragraphs, LegalParagraph{
			Number:             currentNum,
			Content:            content,
			Page:               page,
			SectionType:        SectionMainText,
			TokenCount:         estimateTokens(content),
			FootnoteReferences: extractFootnoteReferences(content),
			StartLine:          lineNum - len(buffer),
			EndLine:            lineNum,
			ExtractionMethod:   ExtractionHybridOCR,
			Confidence:         0.8,
		})
		seen[currentNum] = true
	}

	for lineNum, line := range lines {
		m, num := matchParagraphNumber(line, ps)
		if m == nil {
			if len(buffer) > 0 {
				buffer = append(buffer, line)
			}
			continue
		}

		flush(lineNum)

		if !seen[num] {
			currentNum = num
			buffer = []string{strings.TrimSpace(line[m[1]:])}
		} else {
			// Duplicate number: suppress accumulation until the next
			// not-yet-seen number appears.
			currentNum = ""
			buffer = nil
		}
	}

	flush(len(lines))

	return paragraphs
}

// matchParagraphNumber tries the primary paragraph patterns first, then the
// high-number patterns. First match wins; returns the submatch indexes and
// the captured number.
func matchParagraphNumber(line string, ps *PatternSet) ([]int, string) {
	for _, re := range ps.paragraphNumbers {
		if m := re.FindStringSubmatchIndex(line); m != nil {
			return m, line[m[2]:m[3]]
		}
	}
	for _, re := range ps.highNumbers {
		if m := re.FindStringSubmatchIndex(line); m != nil {
			return m, line[m[2]:m[3]]
		}
	}
	return nil, ""
}

// isValidParagraph rejects short fragments, then privileges recognizably
// legal prose over generic long text: content carrying a legal keyword is
// accepted outright, anything else needs at least 10 words.
func isValidParagraph(content string) bool {
	if len(content) < 50 {
		return false
	}
	lower := strings.ToLower(content)
	for _, kw := range paragraphKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return len(strings.Fields(content)) >= 10
}

// estimateTokens compensates for OCR-dropped punctuation and sub-word
// artifacts with a fixed per-word multiplier.
func estimateTokens(content string) int {
	return int(math.Round(float64(len(strings.Fields(content))) * 1.3))
}

func extractFootnoteReferences(content string) []string {
	refs := footnoteRefPattern.FindAllString(content, -1)
	if refs == nil {
		return []string{}
	}
	return refs
}

package extract

import (
	"fmt"
	"regexp"
)

// PatternConfig is the uncompiled, list-of-strings form of the recognition
// patterns. Lists are ordered; where first-match-wins applies the declared
// order is the match order.
type PatternConfig struct {
	// FootnoteStart matches a footnote number at the start of a text-layer
	// line. Group 1 must capture the number.
	FootnoteStart string

	// ParagraphNumbers are the primary paragraph-number forms tried first.
	ParagraphNumbers []string

	// HighNumbers are fallback forms for 3-4 digit paragraph numbers the
	// OCR engine tends to mangle.
	HighNumbers []string

	// Dates exclude page-number/date lines that coincidentally start with
	// digits. Matched case-insensitively against footnote content.
	Dates []string

	// HeadersFooters match running headers, footers and bare page numbers.
	HeadersFooters []string

	// Citations are the legal-citation forms a footnote must exhibit, each
	// with the weight it contributes to the confidence score.
	Citations []CitationPattern

	// FootnoteKeywords feed the downstream relevance-weighting layer. The
	// recognizers themselves do not consult them.
	FootnoteKeywords []string
}

// CitationPattern pairs a citation regex with its confidence weight.
type CitationPattern struct {
	Expr   string
	Weight float64
}

// DefaultPatternConfig returns the pattern lists tuned for ICC judgment
// documents (case ICC-01/14-01/18).
func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		FootnoteStart: `^(\d{1,3})\s+`,

		ParagraphNumbers: []string{
			`^(\d{1,4})\.\s+`, // "45. "
			`^(\d{1,4})\.`,    // "4289." without space, common in OCR output
		},
		HighNumbers: []string{
			`^(\d{4})\.\s+`,
			`^(\d{3,4})\.\s+`,
		},

		Dates: []string{
			`\b(19|20)\d{2}\b`,
			`\b\d{1,2}\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`,
			`\b\d{1,2}\s+\w+\s+\d{4}\b`,
		},

		HeadersFooters: []string{
			`ICC-01/14-01/18-2784-Red\s+\d{2}-\d{2}-\d{4}\s+\d+/\d+\s+T`,
			`No\.\s+ICC-01/14-01/18\s+\d+/\d+\s+\d{2}\s+\w+\s+\d{4}`,
			`^\d+/\d+$`,
			`^No\.\s+ICC-`,
		},

		Citations: []CitationPattern{
			{Expr: `P-\d+:`, Weight: 0.4},        // witness reference
			{Expr: `T-\d+`, Weight: 0.3},         // transcript reference
			{Expr: `CAR-`, Weight: 0.2},          // document reference
			{Expr: `ICC-`, Weight: 0.2},          // case reference
			{Expr: `para\.?\s+\d+`, Weight: 0.1}, // paragraph reference
			{Expr: `p\.\s+\d+`, Weight: 0.1},     // page reference
			{Expr: `lines?\s+\d+`, Weight: 0},    // line reference, validation only
			{Expr: `Article\s+\d+`, Weight: 0.1},
			{Expr: `Rule\s+\d+`, Weight: 0.1},
		},

		FootnoteKeywords: []string{
			"judgment", "appeals", "trial", "chamber", "para", "icc-",
			"prosecutor", "statute", "article", "red", "conf", "bemba",
			"ongwen", "al hassan", "court", "decision",
		},
	}
}

// PatternSet is the compiled form of a PatternConfig, shared read-only by
// every recognizer instance.
type PatternSet struct {
	footnoteStart    *regexp.Regexp
	paragraphNumbers []*regexp.Regexp
	highNumbers      []*regexp.Regexp
	dates            []*regexp.Regexp
	headers          []*regexp.Regexp
	citations        []citation

	// FootnoteKeywords is carried through for the query-side weighting code.
	FootnoteKeywords []string
}

type citation struct {
	re     *regexp.Regexp
	weight float64
}

// NewPatternSet compiles a PatternConfig. Date patterns are compiled
// case-insensitively.
func NewPatternSet(cfg PatternConfig) (*PatternSet, error) {
	fs, err := regexp.Compile(cfg.FootnoteStart)
	if err != nil {
		return nil, fmt.Errorf("compile footnote pattern %q: %w", cfg.FootnoteStart, err)
	}
	if fs.NumSubexp() < 1 {
		return nil, fmt.Errorf("footnote pattern %q must capture the number", cfg.FootnoteStart)
	}

	ps := &PatternSet{
		footnoteStart:    fs,
		FootnoteKeywords: cfg.FootnoteKeywords,
	}

	if ps.paragraphNumbers, err = compileAll(cfg.ParagraphNumbers, ""); err != nil {
		return nil, fmt.Errorf("paragraph patterns: %w", err)
	}
	if ps.highNumbers, err = compileAll(cfg.HighNumbers, ""); err != nil {
		return nil, fmt.Errorf("high-number patterns: %w", err)
	}
	if ps.dates, err = compileAll(cfg.Dates, "(?i)"); err != nil {
		return nil, fmt.Errorf("date patterns: %w", err)
	}
	if ps.headers, err = compileAll(cfg.HeadersFooters, ""); err != nil {
		return nil, fmt.Errorf("header patterns: %w", err)
	}

	for _, c := range cfg.Citations {
		re, err := regexp.Compile(c.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile citation pattern %q: %w", c.Expr, err)
		}
		ps.citations = append(ps.citations, citation{re: re, weight: c.Weight})
	}

	return ps, nil
}

// DefaultPatternSet returns the compiled default patterns. The defaults are
// known-good, so compilation cannot fail.
func DefaultPatternSet() *PatternSet {
	ps, err := NewPatternSet(DefaultPatternConfig())
	if err != nil {
		panic(err)
	}
	return ps
}

func compileAll(exprs []string, prefix string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(prefix + e)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", e, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// isHeaderFooter reports whether a line matches any running header/footer
// pattern.
func (ps *PatternSet) isHeaderFooter(line string) bool {
	for _, re := range ps.headers {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Package chunker assembles finalized paragraphs and footnotes into ordered
// semantic chunks for retrieval.
package chunker

import (
	"fmt"
	"sort"

	"github.com/canglade629/icc-rag-backend/internal/extract"
)

// Chunk types. One chunk per paragraph and one per footnote; entities are
// never merged.
const (
	TypeParagraph = "paragraph"
	TypeFootnote  = "footnote"
)

// SemanticChunk is a derived, read-only view over one finalized paragraph or
// footnote.
type SemanticChunk struct {
	ChunkID          string         `json:"chunk_id"`
	Content          string         `json:"content"`
	ChunkType        string         `json:"chunk_type"`
	PageRange        [2]int         `json:"page_range"`
	ParagraphNumbers []string       `json:"paragraph_numbers"`
	FootnoteNumbers  []string       `json:"footnote_numbers"`
	TokenCount       int            `json:"token_count"`
	Metadata         map[string]any `json:"metadata"`
}

// Assemble groups paragraphs by page and, for each page in ascending order,
// emits one chunk per paragraph (in recognition order) followed by one chunk
// per footnote on that page. Chunk ids come from a single counter shared
// across both chunk types, so for a fixed input collection the id sequence
// is reproducible.
//
// Assembly always runs single-threaded over the fully aggregated result, so
// the counter needs no locking.
func Assemble(paragraphs []extract.LegalParagraph, footnotes []extract.Footnote) []SemanticChunk {
	byPage := make(map[int][]extract.LegalParagraph)
	for _, p := range paragraphs {
		byPage[p.Page] = append(byPage[p.Page], p)
	}

	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	var chunks []SemanticChunk
	chunkID := 1

	for _, page := range pages {
		for _, para := range byPage[page] {
			chunks = append(chunks, SemanticChunk{
				ChunkID:          fmt.Sprintf("para_%d", chunkID),
				Content:          para.Content,
				ChunkType:        TypeParagraph,
				PageRange:        [2]int{para.Page, para.Page},
				ParagraphNumbers: []string{para.Number},
				FootnoteNumbers:  para.FootnoteReferences,
				TokenCount:       para.TokenCount,
				Metadata: map[string]any{
					"extraction_method": para.ExtractionMethod,
					"confidence":        para.Confidence,
					"section_type":      para.SectionType,
				},
			})
			chunkID++
		}

		for _, fn := range footnotes {
			if fn.Page != page {
				continue
			}
			chunks = append(chunks, SemanticChunk{
				ChunkID:          fmt.Sprintf("footnote_%d", chunkID),
				Content:          fn.Content,
				ChunkType:        TypeFootnote,
				PageRange:        [2]int{fn.Page, fn.Page},
				ParagraphNumbers: []string{},
				FootnoteNumbers:  []string{fn.Number},
				TokenCount:       EstimateTokens(fn.Content),
				Metadata: map[string]any{
					"detection_method": fn.DetectionMethod,
					"confidence":       fn.Confidence,
				},
			})
			chunkID++
		}
	}

	return chunks
}

// Package export persists completed extraction runs: the paragraph,
// footnote and chunk collections as JSON, plus a human-readable run report.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/canglade629/icc-rag-backend/internal/chunker"
	"github.com/canglade629/icc-rag-backend/internal/pipeline"
)

// FileExporter writes run output under a per-job directory.
type FileExporter struct {
	dir string
	log *slog.Logger
}

func NewFileExporter(dir string, log *slog.Logger) *FileExporter {
	return &FileExporter{dir: dir, log: log}
}

// Export writes hybrid_paragraphs.json, hybrid_footnotes.json,
// hybrid_chunks.json and report.md for one completed run.
func (e *FileExporter) Export(job *pipeline.Job, res *pipeline.Result, chunks []chunker.SemanticChunk) error {
	outDir := filepath.Join(e.dir, job.ID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeJSON(filepath.Join(outDir, "hybrid_paragraphs.json"), res.Paragraphs); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, "hybrid_footnotes.json"), res.Footnotes); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, "hybrid_chunks.json"), chunks); err != nil {
		return err
	}

	report := BuildReport(job.Filename, res, chunks)
	if err := os.WriteFile(filepath.Join(outDir, "report.md"), []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	e.log.Info("results exported", "job_id", job.ID, "dir", outDir)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

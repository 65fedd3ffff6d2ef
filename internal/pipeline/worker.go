package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/canglade629/icc-rag-backend/internal/chunker"
	"github.com/canglade629/icc-rag-backend/internal/config"
	"github.com/canglade629/icc-rag-backend/internal/extract"
	"github.com/canglade629/icc-rag-backend/internal/pagesource"
)

// Exporter persists a completed run. Export failures degrade the job, they
// never fail it: the result is still available in memory.
type Exporter interface {
	Export(job *Job, res *Result, chunks []chunker.SemanticChunk) error
}

// Worker processes a single extraction run.
type Worker struct {
	cfg      config.Config
	patterns *extract.PatternSet
	exporter Exporter
	stats    *PageStats
	log      *slog.Logger
}

func NewWorker(cfg config.Config, ps *extract.PatternSet, exporter Exporter, stats *PageStats, log *slog.Logger) *Worker {
	return &Worker{cfg: cfg, patterns: ps, exporter: exporter, stats: stats, log: log}
}

// Process runs the full extraction pipeline for a job: open, partition,
// parallel page extraction, aggregation, chunk assembly, export.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.Filename)
	defer job.RemoveFile()

	// Phase 1: Open the document.
	job.SetStatus(StatusOpening, "opening")
	doc, err := pagesource.Open(job.File(), pagesource.Options{
		OCRLanguage:    w.cfg.OCRLanguage,
		OCRPageSegMode: w.cfg.OCRPageSegMode,
		OCRDPI:         w.cfg.OCRDPI,
	}, log)
	if err != nil {
		log.Error("open failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "opening")
		return
	}
	defer doc.Close()

	// Phase 2: Partition the page range. A document with nothing to process
	// past the skipped front matter is the one fatal condition.
	parts, err := Partitions(doc.PageCount(), job.SkipFirstPages, job.PagesPerPartition)
	if err != nil {
		log.Error("partitioning failed", "pages", doc.PageCount(), "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "opening")
		return
	}
	total := 0
	for _, p := range parts {
		total += len(p.Pages)
	}
	job.SetTotalPages(total)
	log.Info("partitioned document", "pages", total, "partitions", len(parts))

	// Phase 3: Extract pages in parallel.
	job.SetStatus(StatusExtracting, "extracting")
	runner := NewRunner(extract.NewProcessor(doc, w.patterns, log), w.cfg.WorkerCount, log)
	runner.OnPage = func(res extract.PageResult) {
		job.PageDone(len(res.Paragraphs), len(res.Footnotes), res.Err != nil)
		w.stats.Record(res.Duration.Milliseconds())
	}
	start := time.Now()
	results := runner.Run(ctx, parts)

	// Phase 4: Aggregate and assemble chunks.
	job.SetStatus(StatusAssembling, "assembling")
	res := Aggregate(results, time.Since(start))
	chunks := chunker.Assemble(res.Paragraphs, res.Footnotes)
	job.SetResult(res, chunks)
	log.Info("run aggregated",
		"paragraphs", res.Statistics.TotalParagraphs,
		"footnotes", res.Statistics.TotalFootnotes,
		"chunks", len(chunks),
		"failed_pages", res.Statistics.FailedPages,
	)

	// Phase 5: Export.
	if w.exporter != nil {
		job.SetStatus(StatusExporting, "exporting")
		if err := w.exporter.Export(job, res, chunks); err != nil {
			log.Error("export failed", "error", err)
			job.AddError("export: " + err.Error())
		}
	}

	switch {
	case res.Statistics.SuccessfulPages == 0:
		job.SetStatus(StatusFailed, "done")
	case res.Statistics.FailedPages > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
}

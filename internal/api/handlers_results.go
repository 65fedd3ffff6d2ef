package api

import (
	"encoding/json"
	"net/http"

	"github.com/canglade629/icc-rag-backend/internal/export"
	"github.com/canglade629/icc-rag-backend/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// finishedJob resolves a job that has produced a result, writing the
// appropriate error response otherwise.
func (s *Server) finishedJob(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil
	}
	if res, _ := job.Result(); res == nil {
		jsonError(w, "job has no result yet", http.StatusConflict)
		return nil
	}
	return job
}

// handleResult returns the aggregated paragraphs, footnotes and statistics.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	job := s.finishedJob(w, r)
	if job == nil {
		return
	}
	res, _ := job.Result()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// handleChunks returns the assembled semantic chunks.
func (s *Server) handleChunks(w http.ResponseWriter, r *http.Request) {
	job := s.finishedJob(w, r)
	if job == nil {
		return
	}
	_, chunks := job.Result()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id": job.ID,
		"count":  len(chunks),
		"chunks": chunks,
	})
}

// handleReport renders the run report as HTML.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	job := s.finishedJob(w, r)
	if job == nil {
		return
	}
	res, chunks := job.Result()
	html, err := export.RenderHTML(export.BuildReport(job.Filename, res, chunks))
	if err != nil {
		s.log.Error("report render failed", "job_id", job.ID, "error", err)
		jsonError(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// handlePageStats returns the rolling per-page latency snapshot.
func (s *Server) handlePageStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"pages":       s.orchestrator.PageLatencies(),
	})
}

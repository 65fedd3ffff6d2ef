package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/canglade629/icc-rag-backend/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleExtract accepts a judgment PDF upload and queues an extraction run.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	// Spool the upload to disk: both the text-layer reader and pdftoppm need
	// a seekable file.
	tmp, err := os.CreateTemp(s.cfg.UploadDir, "extract-*.pdf")
	if err != nil {
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return
	}
	written, err := io.Copy(tmp, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if written > s.cfg.MaxUploadBytes {
		os.Remove(tmp.Name())
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	// Per-run partitioning overrides.
	skip := s.cfg.SkipFirstPages
	if v := r.FormValue("skip_first_pages"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	perPartition := s.cfg.PagesPerPartition
	if v := r.FormValue("pages_per_partition"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			perPartition = n
		}
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:                pipeline.ContentHashHex([]byte(fmt.Sprintf("%s-%d", filename, now.UnixNano())))[:20],
		Filename:          filename,
		Status:            pipeline.StatusQueued,
		Phase:             "queued",
		SkipFirstPages:    skip,
		PagesPerPartition: perPartition,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	job.SetFile(tmp.Name(), true)

	if err := s.orchestrator.Submit(job); err != nil {
		job.RemoveFile()
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/extract/%s/status", job.ID),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

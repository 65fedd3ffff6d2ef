package pipeline

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/canglade629/icc-rag-backend/internal/chunker"
)

// JobStatus represents the state of an extraction run.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusOpening    JobStatus = "opening"
	StatusExtracting JobStatus = "extracting"
	StatusAssembling JobStatus = "assembling"
	StatusExporting  JobStatus = "exporting"
	StatusCompleted  JobStatus = "completed"
	StatusPartial    JobStatus = "partial"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single document extraction run.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`

	// Per-run partitioning overrides; zero means "use the service default".
	SkipFirstPages    int `json:"skip_first_pages"`
	PagesPerPartition int `json:"pages_per_partition"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	pdfPath    string
	removeFile bool
	result     *Result
	chunks     []chunker.SemanticChunk
	errors     []string
}

// Progress tracks processing progress through a run.
type Progress struct {
	TotalPages     int      `json:"total_pages"`
	PagesProcessed int      `json:"pages_processed"`
	FailedPages    int      `json:"failed_pages"`
	Paragraphs     int      `json:"paragraphs"`
	Footnotes      int      `json:"footnotes"`
	Chunks         int      `json:"chunks"`
	Errors         []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs and any uploaded file they still own.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			job.RemoveFile()
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotalPages records the number of pages the run will attempt.
func (j *Job) SetTotalPages(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPages = n
	j.UpdatedAt = time.Now()
}

// PageDone folds one completed page into the progress counters. Safe to call
// from concurrent page workers.
func (j *Job) PageDone(paragraphs, footnotes int, failed bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PagesProcessed++
	if failed {
		j.Progress.FailedPages++
	}
	j.Progress.Paragraphs += paragraphs
	j.Progress.Footnotes += footnotes
	j.UpdatedAt = time.Now()
}

// SetResult stores the final aggregated result and assembled chunks.
func (j *Job) SetResult(res *Result, chunks []chunker.SemanticChunk) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.chunks = chunks
	j.Progress.Chunks = len(chunks)
	j.UpdatedAt = time.Now()
}

// Result returns the aggregated result and chunks, or nil before completion.
func (j *Job) Result() (*Result, []chunker.SemanticChunk) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.chunks
}

// SetFile records the PDF path the run reads from. removeAfter marks the
// file as an upload the job owns and must delete when done.
func (j *Job) SetFile(path string, removeAfter bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pdfPath = path
	j.removeFile = removeAfter
}

// File returns the PDF path for the run.
func (j *Job) File() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pdfPath
}

// RemoveFile deletes the uploaded PDF if the job owns one.
func (j *Job) RemoveFile() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.removeFile && j.pdfPath != "" {
		os.Remove(j.pdfPath)
		j.pdfPath = ""
	}
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Filename: j.Filename,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: Progress{
			TotalPages:     j.Progress.TotalPages,
			PagesProcessed: j.Progress.PagesProcessed,
			FailedPages:    j.Progress.FailedPages,
			Paragraphs:     j.Progress.Paragraphs,
			Footnotes:      j.Progress.Footnotes,
			Chunks:         j.Progress.Chunks,
			Errors:         errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns the hex string.
// Job and document ids derive from it.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/canglade629/icc-rag-backend/internal/config"
	"github.com/canglade629/icc-rag-backend/internal/extract"
)

// Orchestrator manages extraction runs: a bounded queue of jobs, each
// processed by a Worker that fans out over page partitions.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	cfg      config.Config
	patterns *extract.PatternSet
	exporter Exporter
	stats    *PageStats
	log      *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start before submitting jobs.
func NewOrchestrator(cfg config.Config, ps *extract.PatternSet, exporter Exporter, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		cfg:      cfg,
		patterns: ps,
		exporter: exporter,
		stats:    NewPageStats(time.Hour),
		log:      log,
	}
}

// Start launches run workers and the job store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.MaxConcurrentRuns; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.cfg, o.patterns, o.exporter, o.stats, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new extraction run.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// PageLatencies returns the rolling per-page latency snapshot.
func (o *Orchestrator) PageLatencies() LatencySnapshot {
	return o.stats.Snapshot()
}

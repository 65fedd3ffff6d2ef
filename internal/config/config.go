package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Document partitioning
	SkipFirstPages    int // intro and table of contents
	PagesPerPartition int

	// Parallelism
	WorkerCount       int // page workers per run
	MaxConcurrentRuns int
	MaxQueueSize      int

	// OCR
	OCRLanguage    string
	OCRPageSegMode int
	OCRDPI         int

	// Upload limits
	MaxUploadBytes int64
	UploadDir      string

	// Export
	OutputDir string

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("EXTRACT_API_KEY"),

		SkipFirstPages:    envInt("SKIP_FIRST_PAGES", 6),
		PagesPerPartition: envInt("PAGES_PER_PARTITION", 50),

		WorkerCount:       envInt("WORKER_COUNT", 4),
		MaxConcurrentRuns: envInt("MAX_CONCURRENT_RUNS", 1),
		MaxQueueSize:      envInt("MAX_QUEUE_SIZE", 20),

		OCRLanguage:    envOr("OCR_LANGUAGE", "eng"),
		OCRPageSegMode: envInt("OCR_PSM", 6), // uniform block of text
		OCRDPI:         envInt("OCR_DPI", 144),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 209715200), // 200MB
		UploadDir:      envOr("UPLOAD_DIR", os.TempDir()),

		OutputDir: envOr("OUTPUT_DIR", "output_hybrid"),

		JobTTL: envDuration("JOB_TTL", 24*time.Hour),
	}

	if cfg.PagesPerPartition <= 0 {
		cfg.PagesPerPartition = 50
	}
	if cfg.SkipFirstPages < 0 {
		cfg.SkipFirstPages = 0
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxConcurrentRuns <= 0 {
		cfg.MaxConcurrentRuns = 1
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 20
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 209715200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 24 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("EXTRACT_API_KEY is required")
	}
	if c.OCRPageSegMode < 0 || c.OCRPageSegMode > 13 {
		return fmt.Errorf("OCR_PSM must be in 0..13, got %d", c.OCRPageSegMode)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

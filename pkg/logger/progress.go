package logger

import (
	"fmt"
	"sync"
	"time"
)

// ProgressReporter logs throttled progress for a batch of work items, for
// example seeds being expanded by several goroutines.
type ProgressReporter struct {
	mu          sync.Mutex
	total       int
	current     int
	description string
	interval    time.Duration
	startTime   time.Time
	lastUpdate  time.Time
	logger      *Logger
}

// NewProgressReporter creates a reporter that logs at most once per interval
// and always on completion.
func NewProgressReporter(log *Logger, total int, description string, interval time.Duration) *ProgressReporter {
	if log == nil {
		log = GetLogger()
	}
	now := time.Now()
	return &ProgressReporter{
		total:       total,
		description: description,
		interval:    interval,
		startTime:   now,
		lastUpdate:  now,
		logger:      log.Component("progress"),
	}
}

// Update increments the progress counter and reports when due
func (pr *ProgressReporter) Update(increment int) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.current += increment
	now := time.Now()
	if now.Sub(pr.lastUpdate) >= pr.interval || pr.current >= pr.total {
		pr.reportProgress()
		pr.lastUpdate = now
	}
}

// Progress returns the current counters
func (pr *ProgressReporter) Progress() (current, total int) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.current, pr.total
}

// reportProgress must be called with the lock held
func (pr *ProgressReporter) reportProgress() {
	percentage := 100.0
	if pr.total > 0 {
		percentage = float64(pr.current) / float64(pr.total) * 100
	}

	pr.logger.WithFields(map[string]interface{}{
		"current":     pr.current,
		"total":       pr.total,
		"elapsed_ms":  time.Since(pr.startTime).Milliseconds(),
		"description": pr.description,
	}).Debug(fmt.Sprintf("%s: %d/%d (%.1f%%)", pr.description, pr.current, pr.total, percentage))
}

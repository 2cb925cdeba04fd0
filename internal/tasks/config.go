package tasks

import (
	"time"

	"github.com/mikestefanello/backlite"
)

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// MaxRetries is how often a failed delivery is retried. Default: 3
	MaxRetries int

	// RetryDelay is the backoff between delivery retries. Default: 1m
	RetryDelay time.Duration

	// TaskTimeout bounds one delivery attempt. Default: 1m
	TaskTimeout time.Duration

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration

	// RetentionDuration is how long delivery tasks are kept after completion. Default: 24h
	RetentionDuration time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        1 * time.Minute,
		TaskTimeout:       1 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}

// applyRetryPolicy overrides a queue's attempts, backoff, timeout and retention.
func (c Config) applyRetryPolicy(qc *backlite.QueueConfig) {
	qc.MaxAttempts = c.MaxRetries + 1
	if c.RetryDelay > 0 {
		qc.Backoff = c.RetryDelay
	}
	if c.TaskTimeout > 0 {
		qc.Timeout = c.TaskTimeout
	}
	if c.RetentionDuration > 0 && qc.Retention != nil {
		qc.Retention.Duration = c.RetentionDuration
	}
}

package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type rejectedEventPurger interface {
	DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Job purges rejected events once their review is older than the retention
// window. A zero retention disables the job entirely.
type Job struct {
	purger    rejectedEventPurger
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func New(purger rejectedEventPurger, retention time.Duration, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		purger:    purger,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.purger == nil || j.retention <= 0 {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	rows, err := j.purger.DeleteRejectedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge rejected events: %w", err)
	}
	if rows > 0 {
		j.logger.Info("purged rejected events past retention", zap.Int64("deleted", rows))
	}

	return nil
}

// Start runs the job on a fixed interval until ctx is done. Errors are
// logged, never fatal.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 || j.retention <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("rejected event cleanup failed", zap.Error(err))
			}
		}
	}
}

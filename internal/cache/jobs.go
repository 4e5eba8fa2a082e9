package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	JobListKeyName = "jobs:list"
	JobKeyPrefix   = "job:%d"
)

const (
	JobListTTL = 2 * time.Minute
	JobTTL     = 10 * time.Minute
)

// JobListKey is the cache key for the unfiltered job board listing.
func JobListKey() string {
	return JobListKeyName
}

func JobKey(jobID int64) string {
	return fmt.Sprintf(JobKeyPrefix, jobID)
}

// InvalidateJobList drops the cached job board listing after any job write.
func InvalidateJobList(ctx context.Context) {
	Invalidate(ctx, JobListKey())
}

func InvalidateJob(ctx context.Context, jobID int64) {
	Invalidate(ctx, JobKey(jobID))
	InvalidateJobList(ctx)
}

package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// PlatformStats is the admin dashboard summary. JobApplicationTotal is
// recomputed from the applications collection, not read from the cached
// per-job counters.
type PlatformStats struct {
	JobsByStatus     map[domain.JobStatus]int64
	NewsByStatus     map[domain.NewsStatus]int64
	ApplicationTotal int64
	InquiryTotal     int64
}

// StatsInput requires view-analytics.
type StatsInput struct {
	Actor Actor
}

// StatsService aggregates platform counters for the back-office.
type StatsService interface {
	Summary(ctx context.Context, in StatsInput) (*PlatformStats, error)
}

package ports

import (
	"context"
	"time"

	"github.com/apnajourney/platform/internal/core/domain"
)

// ListJobsFilter carries all query parameters for listing jobs. The service
// layer decides which fields to set: public listings force Status=approved and
// Unexpired=true; owner listings force PostedBy.
type ListJobsFilter struct {
	Status    domain.JobStatus // optional
	Category  string
	JobType   string
	Location  string
	Search    string // text search over title/company/description
	PostedBy  string // scope to an owner
	Unexpired bool   // expires_at > now
	Page      Page
}

// ReviewUpdate records a moderation decision on a pending item.
type ReviewUpdate struct {
	Status     domain.JobStatus
	ReviewerID string
	Reason     string
	ReviewedAt time.Time
}

// JobRepository persists job postings.
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Job, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)

	// UpdateStatusIfPending applies the review as a compare-and-swap: the write
	// succeeds only if the job is still pending. Returns domain.ErrReviewConflict
	// when the CAS loses (already reviewed) and domain.ErrJobNotFound when the
	// job does not exist.
	UpdateStatusIfPending(ctx context.Context, id string, review ReviewUpdate) (*domain.Job, error)

	IncrementViews(ctx context.Context, id string, delta int64) error
	IncrementApplicationCount(ctx context.Context, id string, delta int64) error

	// SetApplicationCount overwrites the cached counter with a value recomputed
	// from the applications collection (ApplicationRepository.CountForJob).
	SetApplicationCount(ctx context.Context, id string, count int64) error
	CountByStatus(ctx context.Context) (map[domain.JobStatus]int64, error)
}

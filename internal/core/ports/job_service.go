package ports

import (
	"context"
	"time"

	"github.com/apnajourney/platform/internal/core/domain"
)

// CreateJobInput carries all data needed to post a job. Actor must hold
// create-jobs (user kind) or manage-jobs (admin kind, posts directly approved).
type CreateJobInput struct {
	Actor        Actor
	Title        string
	Company      string
	Description  string
	Category     string
	JobType      string
	Location     string
	Salary       string
	Requirements []string
	ContactEmail string
	ContactPhone string
	ExpiresAt    time.Time
}

// UpdateJobInput edits an owned, not-yet-approved job. Nil fields are left
// unchanged; a title change re-derives the slug.
type UpdateJobInput struct {
	Actor        Actor
	JobID        string
	Title        *string
	Company      *string
	Description  *string
	Salary       *string
	Requirements []string
	ExpiresAt    *time.Time
}

// DeleteJobInput deletes a job: the owner with delete-own-content, or any
// actor with manage-jobs.
type DeleteJobInput struct {
	Actor Actor
	JobID string
}

// ApproveJobInput moves pending→approved. Actor must hold manage-jobs.
type ApproveJobInput struct {
	Actor Actor
	JobID string
}

// RejectJobInput moves pending→rejected. Reason is mandatory.
type RejectJobInput struct {
	Actor  Actor
	JobID  string
	Reason string
}

// ListJobsInput is the public listing query (approved, unexpired only).
type ListJobsInput struct {
	Category string
	JobType  string
	Location string
	Search   string
	Page     Page
}

// ListOwnJobsInput scopes a listing to the calling owner, any status.
type ListOwnJobsInput struct {
	Actor  Actor
	Status domain.JobStatus // optional
	Page   Page
}

// ModerationQueueInput lists items awaiting review (requires manage-jobs).
type ModerationQueueInput struct {
	Actor  Actor
	Status domain.JobStatus // defaults to pending
	Page   Page
}

// GetJobInput fetches a single job. Public callers (empty Actor.ID) only see
// approved, unexpired jobs; owners and moderators see everything of theirs.
type GetJobInput struct {
	Actor Actor
	Slug  string
}

// JobService defines use-case operations for job postings.
type JobService interface {
	Create(ctx context.Context, in CreateJobInput) (*domain.Job, error)
	Update(ctx context.Context, in UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, in DeleteJobInput) error
	Get(ctx context.Context, in GetJobInput) (*domain.Job, error)
	ListPublic(ctx context.Context, in ListJobsInput) ([]*domain.Job, PageResult, error)
	ListOwn(ctx context.Context, in ListOwnJobsInput) ([]*domain.Job, PageResult, error)
	ModerationQueue(ctx context.Context, in ModerationQueueInput) ([]*domain.Job, PageResult, error)
	Approve(ctx context.Context, in ApproveJobInput) (*domain.Job, error)
	Reject(ctx context.Context, in RejectJobInput) (*domain.Job, error)
}

package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// ListApplicationsFilter narrows application listings.
type ListApplicationsFilter struct {
	JobID       string
	ApplicantID string
	Status      domain.ApplicationStatus
	Page        Page
}

// ApplicationRepository persists applications. A unique (job_id, applicant_id)
// index makes duplicate submission a store-level error, not a check-then-act.
type ApplicationRepository interface {
	// Create returns domain.ErrDuplicateApplication on a uniqueness violation.
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, filter ListApplicationsFilter) ([]*domain.Application, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error

	// CountForJob is the source-of-truth count used to recompute the job's
	// cached application_count.
	CountForJob(ctx context.Context, jobID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

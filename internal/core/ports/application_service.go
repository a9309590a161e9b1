package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// SubmitApplicationInput applies to an approved, unexpired job. One application
// per (job, applicant); a duplicate fails with domain.ErrDuplicateApplication.
type SubmitApplicationInput struct {
	Actor       Actor
	JobID       string
	Name        string
	Email       string
	Phone       string
	ResumeURL   string
	CoverLetter string
}

// ListJobApplicationsInput lists applications for one job. Allowed for the job
// owner or an admin, in both cases holding manage-applications.
type ListJobApplicationsInput struct {
	Actor  Actor
	JobID  string
	Status domain.ApplicationStatus
	Page   Page
}

// ReviewApplicationInput sets an application's status (same authorization as
// listing). Out-of-enum status is a validation error.
type ReviewApplicationInput struct {
	Actor         Actor
	ApplicationID string
	Status        domain.ApplicationStatus
}

// ListOwnApplicationsInput lists the caller's own applications.
type ListOwnApplicationsInput struct {
	Actor Actor
	Page  Page
}

// ApplicationService defines use-case operations for job applications.
type ApplicationService interface {
	Submit(ctx context.Context, in SubmitApplicationInput) (*domain.Application, error)
	ListForJob(ctx context.Context, in ListJobApplicationsInput) ([]*domain.Application, PageResult, error)
	ListOwn(ctx context.Context, in ListOwnApplicationsInput) ([]*domain.Application, PageResult, error)
	Review(ctx context.Context, in ReviewApplicationInput) (*domain.Application, error)
}

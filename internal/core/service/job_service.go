package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/api/metrics"
	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
	"github.com/apnajourney/platform/internal/pkg/slugs"
)

// JobService implements job posting use cases, including the moderation
// workflow shared with news.
type JobService struct {
	repo   ports.JobRepository
	logger zerolog.Logger
}

func NewJobService(repo ports.JobRepository, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, logger: logger}
}

// Create posts a new job. User-kind actors need create-jobs and the job enters
// pending review; admin-kind actors with manage-jobs post directly approved.
func (s *JobService) Create(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	now := time.Now().UTC()
	if !in.ExpiresAt.After(now) {
		return nil, fmt.Errorf("%w: expires_at must be in the future", domain.ErrValidation)
	}

	status := domain.JobPending
	switch in.Actor.Kind {
	case domain.KindAdmin:
		if !in.Actor.Can(domain.PermManageJobs) {
			return nil, domain.ErrForbidden
		}
		status = domain.JobApproved
	default:
		if !in.Actor.Can(domain.PermCreateJobs) {
			return nil, domain.ErrForbidden
		}
	}

	slug, err := slugs.DeriveUnique(ctx, in.Title, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:        in.Title,
		Slug:         slug,
		Company:      in.Company,
		Description:  in.Description,
		Category:     in.Category,
		JobType:      in.JobType,
		Location:     in.Location,
		Salary:       in.Salary,
		Requirements: in.Requirements,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		PostedBy:     in.Actor.ID,
		Status:       status,
		ExpiresAt:    in.ExpiresAt.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == domain.JobApproved {
		job.ReviewedBy = in.Actor.ID
		job.ReviewedAt = &now
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Str("title", in.Title).Msg("failed to create job")
		return nil, err
	}

	metrics.ContentCreatedTotal.WithLabelValues("job", string(status)).Inc()
	s.logger.Info().Str("job_id", created.ID).Str("slug", created.Slug).Str("posted_by", in.Actor.ID).Msg("job created")
	return created, nil
}

// Update edits an owned job that has not been approved yet. A title change
// re-derives the slug.
func (s *JobService) Update(ctx context.Context, in ports.UpdateJobInput) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	if job.PostedBy != in.Actor.ID || !in.Actor.Can(domain.PermEditOwnContent) {
		return nil, domain.ErrForbidden
	}
	if job.Status == domain.JobApproved {
		return nil, fmt.Errorf("%w: approved jobs cannot be edited", domain.ErrForbidden)
	}

	if in.Title != nil && *in.Title != job.Title {
		job.Title = *in.Title
		slug, err := slugs.DeriveUnique(ctx, job.Title, s.repo.SlugExists)
		if err != nil {
			return nil, err
		}
		job.Slug = slug
	}
	if in.Company != nil {
		job.Company = *in.Company
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Salary != nil {
		job.Salary = *in.Salary
	}
	if in.Requirements != nil {
		job.Requirements = in.Requirements
	}
	if in.ExpiresAt != nil {
		if !in.ExpiresAt.After(time.Now().UTC()) {
			return nil, fmt.Errorf("%w: expires_at must be in the future", domain.ErrValidation)
		}
		job.ExpiresAt = in.ExpiresAt.UTC()
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a job: the owner with delete-own-content (only before
// approval), or any actor holding manage-jobs.
func (s *JobService) Delete(ctx context.Context, in ports.DeleteJobInput) error {
	job, err := s.repo.FindByID(ctx, in.JobID)
	if err != nil {
		return err
	}

	if in.Actor.Can(domain.PermManageJobs) {
		return s.repo.Delete(ctx, in.JobID)
	}
	if job.PostedBy != in.Actor.ID || !in.Actor.Can(domain.PermDeleteOwnContent) {
		return domain.ErrForbidden
	}
	if job.Status == domain.JobApproved {
		return fmt.Errorf("%w: approved jobs can only be removed by a moderator", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, in.JobID)
}

// Get fetches one job by slug. Public callers only see approved, unexpired
// jobs; the owner and moderators see every status. Non-owners asking for
// hidden content get not-found, never the document.
func (s *JobService) Get(ctx context.Context, in ports.GetJobInput) (*domain.Job, error) {
	job, err := s.repo.FindBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	if job.Status == domain.JobApproved && !job.Expired(time.Now().UTC()) {
		return job, nil
	}
	if in.Actor.ID != "" && (job.PostedBy == in.Actor.ID || in.Actor.Can(domain.PermManageJobs)) {
		return job, nil
	}
	return nil, domain.ErrJobNotFound
}

// ListPublic is the anonymous listing surface: approved, unexpired jobs only.
func (s *JobService) ListPublic(ctx context.Context, in ports.ListJobsInput) ([]*domain.Job, ports.PageResult, error) {
	page := in.Page.Normalize()
	jobs, total, err := s.repo.List(ctx, ports.ListJobsFilter{
		Status:    domain.JobApproved,
		Category:  in.Category,
		JobType:   in.JobType,
		Location:  in.Location,
		Search:    in.Search,
		Unexpired: true,
		Page:      page,
	})
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return jobs, ports.NewPageResult(page, total), nil
}

// ListOwn lists the caller's own jobs in any status, including expired ones.
func (s *JobService) ListOwn(ctx context.Context, in ports.ListOwnJobsInput) ([]*domain.Job, ports.PageResult, error) {
	page := in.Page.Normalize()
	jobs, total, err := s.repo.List(ctx, ports.ListJobsFilter{
		Status:   in.Status,
		PostedBy: in.Actor.ID,
		Page:     page,
	})
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return jobs, ports.NewPageResult(page, total), nil
}

// ModerationQueue lists jobs by moderation status for reviewers.
func (s *JobService) ModerationQueue(ctx context.Context, in ports.ModerationQueueInput) ([]*domain.Job, ports.PageResult, error) {
	if !in.Actor.Can(domain.PermManageJobs) {
		return nil, ports.PageResult{}, domain.ErrForbidden
	}
	status := in.Status
	if status == "" {
		status = domain.JobPending
	}
	page := in.Page.Normalize()
	jobs, total, err := s.repo.List(ctx, ports.ListJobsFilter{Status: status, Page: page})
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return jobs, ports.NewPageResult(page, total), nil
}

// Approve moves pending→approved. The decision is a compare-and-swap on the
// current status; losing the race returns domain.ErrReviewConflict.
func (s *JobService) Approve(ctx context.Context, in ports.ApproveJobInput) (*domain.Job, error) {
	return s.review(ctx, in.Actor, in.JobID, domain.JobApproved, "")
}

// Reject moves pending→rejected. A reason is mandatory and persisted with the
// reviewer identity for auditability.
func (s *JobService) Reject(ctx context.Context, in ports.RejectJobInput) (*domain.Job, error) {
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", domain.ErrValidation)
	}
	return s.review(ctx, in.Actor, in.JobID, domain.JobRejected, in.Reason)
}

func (s *JobService) review(ctx context.Context, actor ports.Actor, jobID string, decision domain.JobStatus, reason string) (*domain.Job, error) {
	if !actor.Can(domain.PermManageJobs) {
		return nil, domain.ErrForbidden
	}

	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	// Owners never self-approve, even if they somehow hold manage-jobs.
	if job.PostedBy == actor.ID {
		return nil, domain.ErrForbidden
	}
	if !job.Status.CanTransitionTo(decision) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, job.Status, decision)
	}

	updated, err := s.repo.UpdateStatusIfPending(ctx, jobID, ports.ReviewUpdate{
		Status:     decision,
		ReviewerID: actor.ID,
		Reason:     reason,
		ReviewedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues("job", string(decision)).Inc()
	s.logger.Info().
		Str("job_id", jobID).
		Str("decision", string(decision)).
		Str("reviewer", actor.ID).
		Msg("job reviewed")
	return updated, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/api/metrics"
	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// ApplicationService implements job applications. Duplicate prevention relies
// on the store's unique (job_id, applicant_id) index so concurrent submissions
// cannot both succeed.
type ApplicationService struct {
	repo    ports.ApplicationRepository
	jobRepo ports.JobRepository
	logger  zerolog.Logger
}

func NewApplicationService(repo ports.ApplicationRepository, jobRepo ports.JobRepository, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, jobRepo: jobRepo, logger: logger}
}

// Submit applies to an approved, unexpired job. On success the parent job's
// application_count is incremented; the counter remains recomputable from
// CountForJob should the increment ever be lost.
func (s *ApplicationService) Submit(ctx context.Context, in ports.SubmitApplicationInput) (*domain.Application, error) {
	if in.Actor.ID == "" {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Email == "" || in.ResumeURL == "" {
		return nil, fmt.Errorf("%w: name, email and resume_url are required", domain.ErrValidation)
	}

	job, err := s.jobRepo.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if job.Status != domain.JobApproved || job.Expired(now) {
		return nil, domain.ErrJobNotFound
	}

	app := &domain.Application{
		JobID:       in.JobID,
		ApplicantID: in.Actor.ID,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		ResumeURL:   in.ResumeURL,
		CoverLetter: in.CoverLetter,
		Status:      domain.ApplicationPending,
		AppliedAt:   now,
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		if err == domain.ErrDuplicateApplication {
			metrics.DuplicateApplicationsTotal.Inc()
		}
		return nil, err
	}

	if err := s.jobRepo.IncrementApplicationCount(ctx, in.JobID, 1); err != nil {
		// The counter is a cache; the count query remains the source of truth.
		s.logger.Warn().Err(err).Str("job_id", in.JobID).Msg("failed to bump application_count")
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	s.logger.Info().Str("job_id", in.JobID).Str("applicant", in.Actor.ID).Msg("application submitted")
	return created, nil
}

// ListForJob lists applications for one job. Allowed for the job owner or an
// admin, both holding manage-applications. The read also repairs the job's
// cached application_count when it has drifted from the stored applications.
func (s *ApplicationService) ListForJob(ctx context.Context, in ports.ListJobApplicationsInput) ([]*domain.Application, ports.PageResult, error) {
	if !in.Actor.Can(domain.PermManageApplications) {
		return nil, ports.PageResult{}, domain.ErrForbidden
	}
	job, err := s.jobRepo.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	if in.Actor.Kind != domain.KindAdmin && job.PostedBy != in.Actor.ID {
		return nil, ports.PageResult{}, domain.ErrForbidden
	}

	page := in.Page.Normalize()
	apps, total, err := s.repo.List(ctx, ports.ListApplicationsFilter{
		JobID:  in.JobID,
		Status: in.Status,
		Page:   page,
	})
	if err != nil {
		return nil, ports.PageResult{}, err
	}

	if count, err := s.repo.CountForJob(ctx, in.JobID); err == nil && count != job.ApplicationCount {
		if err := s.jobRepo.SetApplicationCount(ctx, in.JobID, count); err != nil {
			s.logger.Warn().Err(err).Str("job_id", in.JobID).Msg("failed to repair application_count")
		} else {
			s.logger.Info().Str("job_id", in.JobID).Int64("from", job.ApplicationCount).Int64("to", count).Msg("application_count repaired")
		}
	}

	return apps, ports.NewPageResult(page, total), nil
}

// ListOwn lists the caller's own applications.
func (s *ApplicationService) ListOwn(ctx context.Context, in ports.ListOwnApplicationsInput) ([]*domain.Application, ports.PageResult, error) {
	if in.Actor.ID == "" {
		return nil, ports.PageResult{}, domain.ErrForbidden
	}
	page := in.Page.Normalize()
	apps, total, err := s.repo.List(ctx, ports.ListApplicationsFilter{
		ApplicantID: in.Actor.ID,
		Page:        page,
	})
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return apps, ports.NewPageResult(page, total), nil
}

// Review sets an application's status directly (no state machine).
func (s *ApplicationService) Review(ctx context.Context, in ports.ReviewApplicationInput) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown application status %q", domain.ErrValidation, in.Status)
	}

	app, err := s.repo.FindByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManage(ctx, in.Actor, app.JobID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, in.ApplicationID, in.Status); err != nil {
		return nil, err
	}
	app.Status = in.Status
	return app, nil
}

// authorizeManage checks manage-applications plus ownership for user-kind
// actors; admin-kind actors manage applications on any job.
func (s *ApplicationService) authorizeManage(ctx context.Context, actor ports.Actor, jobID string) error {
	if !actor.Can(domain.PermManageApplications) {
		return domain.ErrForbidden
	}
	if actor.Kind == domain.KindAdmin {
		return nil
	}
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.PostedBy != actor.ID {
		return domain.ErrForbidden
	}
	return nil
}

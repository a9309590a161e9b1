package handler

import (
	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// --- Request → Service input ---

func toCreateJobInput(req createJobRequest, actor ports.Actor) ports.CreateJobInput {
	return ports.CreateJobInput{
		Actor:        actor,
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Category:     req.Category,
		JobType:      req.JobType,
		Location:     req.Location,
		Salary:       req.Salary,
		Requirements: req.Requirements,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		ExpiresAt:    req.ExpiresAt,
	}
}

func toUpdateJobInput(req updateJobRequest, actor ports.Actor, jobID string) ports.UpdateJobInput {
	return ports.UpdateJobInput{
		Actor:        actor,
		JobID:        jobID,
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Salary:       req.Salary,
		Requirements: req.Requirements,
		ExpiresAt:    req.ExpiresAt,
	}
}

// --- Service result → HTTP response ---

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Slug:             j.Slug,
		Company:          j.Company,
		Description:      j.Description,
		Category:         j.Category,
		JobType:          j.JobType,
		Location:         j.Location,
		Salary:           j.Salary,
		Requirements:     j.Requirements,
		ContactEmail:     j.ContactEmail,
		ContactPhone:     j.ContactPhone,
		PostedBy:         j.PostedBy,
		Status:           string(j.Status),
		Views:            j.Views,
		ApplicationCount: j.ApplicationCount,
		ExpiresAt:        j.ExpiresAt.UTC(),
		RejectionReason:  j.RejectionReason,
		ReviewedBy:       j.ReviewedBy,
		ReviewedAt:       j.ReviewedAt,
		CreatedAt:        j.CreatedAt.UTC(),
		UpdatedAt:        j.UpdatedAt.UTC(),
	}
}

func toJobSummary(j *domain.Job) jobSummaryResponse {
	return jobSummaryResponse{
		ID:               j.ID,
		Title:            j.Title,
		Slug:             j.Slug,
		Company:          j.Company,
		Category:         j.Category,
		JobType:          j.JobType,
		Location:         j.Location,
		Salary:           j.Salary,
		Status:           string(j.Status),
		Views:            j.Views,
		ApplicationCount: j.ApplicationCount,
		ExpiresAt:        j.ExpiresAt.UTC(),
		CreatedAt:        j.CreatedAt.UTC(),
	}
}

func toListJobsResponse(jobs []*domain.Job, page ports.PageResult) listJobsResponse {
	items := make([]jobSummaryResponse, len(jobs))
	for i, j := range jobs {
		items[i] = toJobSummary(j)
	}
	return listJobsResponse{Data: items, Pagination: toPagination(page)}
}

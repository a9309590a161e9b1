package domain

import "time"

// ApplicationStatus is the review state of a job application. There is no
// state machine here; recruiters set the status directly.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is a member of the status enum.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationRejected:
		return true
	}
	return false
}

// Application links a job and an applicant. At most one application may exist
// per (JobID, ApplicantID) pair; the repository enforces this with a unique index.
type Application struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	JobID       string            `json:"job_id" bson:"job_id"`
	ApplicantID string            `json:"applicant_id" bson:"applicant_id"`
	Name        string            `json:"name" bson:"name"`
	Email       string            `json:"email" bson:"email"`
	Phone       string            `json:"phone,omitempty" bson:"phone,omitempty"`
	ResumeURL   string            `json:"resume_url" bson:"resume_url"`
	CoverLetter string            `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	AppliedAt   time.Time         `json:"applied_at" bson:"applied_at"`
}

package handler

import "time"

// --- Request types ---

type createJobRequest struct {
	Title        string    `json:"title"         validate:"required,min=3,max=120"`
	Company      string    `json:"company"       validate:"required"`
	Description  string    `json:"description"   validate:"required,min=20,max=5000"`
	Category     string    `json:"category"      validate:"required,oneof=it-software teaching healthcare banking-finance retail-sales government construction other"`
	JobType      string    `json:"job_type"      validate:"required,oneof=full-time part-time contract internship"`
	Location     string    `json:"location"      validate:"required,oneof=gaya bodhgaya patna remote other-bihar"`
	Salary       string    `json:"salary"`
	Requirements []string  `json:"requirements"  validate:"dive,max=200"`
	ContactEmail string    `json:"contact_email" validate:"required,email"`
	ContactPhone string    `json:"contact_phone"`
	ExpiresAt    time.Time `json:"expires_at"    validate:"required"`
}

// updateJobRequest carries the same field bounds as create; absent fields are
// left untouched.
type updateJobRequest struct {
	Title        *string    `json:"title,omitempty"        validate:"omitempty,min=3,max=120"`
	Company      *string    `json:"company,omitempty"`
	Description  *string    `json:"description,omitempty"  validate:"omitempty,min=20,max=5000"`
	Salary       *string    `json:"salary,omitempty"`
	Requirements []string   `json:"requirements,omitempty" validate:"omitempty,dive,max=200"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// --- Response types ---

// jobResponse is the full detail view.
type jobResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Company          string     `json:"company"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	JobType          string     `json:"job_type"`
	Location         string     `json:"location"`
	Salary           string     `json:"salary,omitempty"`
	Requirements     []string   `json:"requirements"`
	ContactEmail     string     `json:"contact_email"`
	ContactPhone     string     `json:"contact_phone,omitempty"`
	PostedBy         string     `json:"posted_by"`
	Status           string     `json:"status"`
	Views            int64      `json:"views"`
	ApplicationCount int64      `json:"application_count"`
	ExpiresAt        time.Time  `json:"expires_at"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	ReviewedBy       string     `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// jobSummaryResponse is the lightweight item used in list responses. It
// intentionally omits the description body to keep payloads small.
type jobSummaryResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Company          string    `json:"company"`
	Category         string    `json:"category"`
	JobType          string    `json:"job_type"`
	Location         string    `json:"location"`
	Salary           string    `json:"salary,omitempty"`
	Status           string    `json:"status"`
	Views            int64     `json:"views"`
	ApplicationCount int64     `json:"application_count"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

type listJobsResponse struct {
	Data       []jobSummaryResponse `json:"data"`
	Pagination paginationResponse   `json:"pagination"`
}

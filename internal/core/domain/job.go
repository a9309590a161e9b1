package domain

import "time"

// JobStatus is the moderation lifecycle state of a job posting.
type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobApproved JobStatus = "approved"
	JobRejected JobStatus = "rejected"
)

// jobTransitions defines the allowed moderation transitions. approved and
// rejected are terminal; re-submission means creating a new job.
var jobTransitions = map[JobStatus][]JobStatus{
	JobPending: {JobApproved, JobRejected},
}

// CanTransitionTo reports whether moving from the current status to next is allowed.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Closed enums for job classification. Validated at the request schema layer.
const (
	JobCategoryIT           = "it-software"
	JobCategoryTeaching     = "teaching"
	JobCategoryHealthcare   = "healthcare"
	JobCategoryBanking      = "banking-finance"
	JobCategoryRetail       = "retail-sales"
	JobCategoryGovernment   = "government"
	JobCategoryConstruction = "construction"
	JobCategoryOther        = "other"

	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"

	JobLocationGaya       = "gaya"
	JobLocationBodhgaya   = "bodhgaya"
	JobLocationPatna      = "patna"
	JobLocationRemote     = "remote"
	JobLocationOtherBihar = "other-bihar"
)

// Job is a job posting. Slug is always re-derived from Title on title change.
type Job struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	Title            string     `json:"title" bson:"title"`
	Slug             string     `json:"slug" bson:"slug"`
	Company          string     `json:"company" bson:"company"`
	Description      string     `json:"description" bson:"description"`
	Category         string     `json:"category" bson:"category"`
	JobType          string     `json:"job_type" bson:"job_type"`
	Location         string     `json:"location" bson:"location"`
	Salary           string     `json:"salary,omitempty" bson:"salary,omitempty"`
	Requirements     []string   `json:"requirements" bson:"requirements"`
	ContactEmail     string     `json:"contact_email" bson:"contact_email"`
	ContactPhone     string     `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`
	PostedBy         string     `json:"posted_by" bson:"posted_by"`
	Status           JobStatus  `json:"status" bson:"status"`
	Views            int64      `json:"views" bson:"views"`
	ApplicationCount int64      `json:"application_count" bson:"application_count"`
	ExpiresAt        time.Time  `json:"expires_at" bson:"expires_at"`
	RejectionReason  string     `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	ReviewedBy       string     `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" bson:"updated_at"`
}

// Expired reports whether the posting's deadline has passed at the given time.
func (j *Job) Expired(now time.Time) bool {
	return !j.ExpiresAt.After(now)
}

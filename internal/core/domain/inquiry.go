package domain

import "time"

// Inquiry is a contact-form submission: a plain ticket record with no state
// machine beyond direct admin edits.
type (
	InquiryType     string
	InquiryStatus   string
	InquiryPriority string
)

const (
	InquiryGeneral   InquiryType = "general"
	InquiryJobs      InquiryType = "jobs"
	InquiryNews      InquiryType = "news"
	InquiryAdvertise InquiryType = "advertise"
	InquiryTechnical InquiryType = "technical"

	InquiryNew        InquiryStatus = "new"
	InquiryInProgress InquiryStatus = "in-progress"
	InquiryResolved   InquiryStatus = "resolved"
	InquiryClosed     InquiryStatus = "closed"

	PriorityLow    InquiryPriority = "low"
	PriorityMedium InquiryPriority = "medium"
	PriorityHigh   InquiryPriority = "high"
)

type Inquiry struct {
	ID         string          `json:"id" bson:"_id,omitempty"`
	Name       string          `json:"name" bson:"name"`
	Email      string          `json:"email" bson:"email"`
	Phone      string          `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject    string          `json:"subject" bson:"subject"`
	Message    string          `json:"message" bson:"message"`
	Type       InquiryType     `json:"type" bson:"type"`
	Status     InquiryStatus   `json:"status" bson:"status"`
	Priority   InquiryPriority `json:"priority" bson:"priority"`
	AdminNotes string          `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" bson:"updated_at"`
}

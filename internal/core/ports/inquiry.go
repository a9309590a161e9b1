package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// ListInquiriesFilter narrows the admin inquiry queue.
type ListInquiriesFilter struct {
	Status   domain.InquiryStatus
	Type     domain.InquiryType
	Priority domain.InquiryPriority
	Page     Page
}

// InquiryRepository persists contact-form tickets.
type InquiryRepository interface {
	Create(ctx context.Context, inq *domain.Inquiry) (*domain.Inquiry, error)
	FindByID(ctx context.Context, id string) (*domain.Inquiry, error)
	List(ctx context.Context, filter ListInquiriesFilter) ([]*domain.Inquiry, int64, error)
	Update(ctx context.Context, inq *domain.Inquiry) error
	Count(ctx context.Context) (int64, error)
}

// CreateInquiryInput is the public contact-form submission.
type CreateInquiryInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
	Type    domain.InquiryType
}

// TriageInquiryInput is a direct admin edit; nil fields are left unchanged.
type TriageInquiryInput struct {
	Actor      Actor
	InquiryID  string
	Status     *domain.InquiryStatus
	Priority   *domain.InquiryPriority
	AdminNotes *string
}

// ListInquiriesInput lists tickets for the back-office (admin kind).
type ListInquiriesInput struct {
	Actor  Actor
	Filter ListInquiriesFilter
}

// InquiryService defines inquiry use cases. Creation is public; everything
// else is admin-only.
type InquiryService interface {
	Create(ctx context.Context, in CreateInquiryInput) (*domain.Inquiry, error)
	List(ctx context.Context, in ListInquiriesInput) ([]*domain.Inquiry, PageResult, error)
	Triage(ctx context.Context, in TriageInquiryInput) (*domain.Inquiry, error)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

const ackTimeout = 10 * time.Second

// InquiryService implements contact-form tickets. An acknowledgement email is
// sent asynchronously on creation; mail failure never fails the request.
type InquiryService struct {
	repo   ports.InquiryRepository
	mailer ports.Mailer
	logger zerolog.Logger
}

func NewInquiryService(repo ports.InquiryRepository, mailer ports.Mailer, logger zerolog.Logger) *InquiryService {
	return &InquiryService{repo: repo, mailer: mailer, logger: logger}
}

// Create records a public contact-form submission.
func (s *InquiryService) Create(ctx context.Context, in ports.CreateInquiryInput) (*domain.Inquiry, error) {
	if in.Name == "" || in.Email == "" || in.Subject == "" || in.Message == "" {
		return nil, fmt.Errorf("%w: name, email, subject and message are required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	inq := &domain.Inquiry{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		Type:      in.Type,
		Status:    domain.InquiryNew,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, inq)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go s.sendAck(created)
	}

	s.logger.Info().Str("inquiry_id", created.ID).Str("type", string(in.Type)).Msg("inquiry created")
	return created, nil
}

func (s *InquiryService) sendAck(inq *domain.Inquiry) {
	ctx, cancel := context.WithTimeout(context.Background(), ackTimeout)
	defer cancel()

	mail := ports.OutboundMail{
		To:      inq.Email,
		Subject: "We received your inquiry: " + inq.Subject,
		Body: fmt.Sprintf("Hi %s,\n\nThanks for reaching out to Apna Journey. "+
			"Your inquiry has been recorded and our team will get back to you soon.\n\nReference: %s\n", inq.Name, inq.ID),
	}
	if err := s.mailer.Send(ctx, mail); err != nil {
		s.logger.Warn().Err(err).Str("inquiry_id", inq.ID).Msg("failed to send inquiry acknowledgement")
	}
}

// List lists tickets for the back-office. Any admin-kind actor may triage.
func (s *InquiryService) List(ctx context.Context, in ports.ListInquiriesInput) ([]*domain.Inquiry, ports.PageResult, error) {
	if in.Actor.Kind != domain.KindAdmin {
		return nil, ports.PageResult{}, domain.ErrForbidden
	}
	filter := in.Filter
	filter.Page = filter.Page.Normalize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return items, ports.NewPageResult(filter.Page, total), nil
}

// Triage applies direct admin edits to a ticket.
func (s *InquiryService) Triage(ctx context.Context, in ports.TriageInquiryInput) (*domain.Inquiry, error) {
	if in.Actor.Kind != domain.KindAdmin {
		return nil, domain.ErrForbidden
	}

	inq, err := s.repo.FindByID(ctx, in.InquiryID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		switch *in.Status {
		case domain.InquiryNew, domain.InquiryInProgress, domain.InquiryResolved, domain.InquiryClosed:
			inq.Status = *in.Status
		default:
			return nil, fmt.Errorf("%w: unknown inquiry status %q", domain.ErrValidation, *in.Status)
		}
	}
	if in.Priority != nil {
		switch *in.Priority {
		case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
			inq.Priority = *in.Priority
		default:
			return nil, fmt.Errorf("%w: unknown inquiry priority %q", domain.ErrValidation, *in.Priority)
		}
	}
	if in.AdminNotes != nil {
		inq.AdminNotes = *in.AdminNotes
	}
	inq.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

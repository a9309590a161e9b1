package ports

import "context"

// OutboundMail is a plain-text message handed to the mail infrastructure.
type OutboundMail struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends outbound mail. Failures are expected to be non-fatal for the
// calling use case; callers log and continue.
type Mailer interface {
	Send(ctx context.Context, mail OutboundMail) error
}

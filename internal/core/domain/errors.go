package domain

import "errors"

// Sentinel errors for the platform. Every failure in the core is one of these
// (possibly wrapped); the HTTP layer maps them to status codes in one place.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("access forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBanned      = errors.New("account is banned")

	ErrAccountNotFound     = errors.New("account not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrNewsNotFound        = errors.New("article not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInquiryNotFound     = errors.New("inquiry not found")

	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateApplication = errors.New("application already submitted for this job")
	ErrDuplicateSlug        = errors.New("slug already in use")

	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrReviewConflict is returned when a moderation decision loses the
	// compare-and-swap race: the item was no longer pending at write time.
	ErrReviewConflict = errors.New("item already reviewed")
)

package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// SettingsRepository persists the singleton settings document.
type SettingsRepository interface {
	// Get returns the stored document, or nil when none has been saved yet.
	Get(ctx context.Context) (*domain.Settings, error)
	// Save upserts the singleton document.
	Save(ctx context.Context, s *domain.Settings) error
}

// UpdateSettingsInput overwrites the site settings (requires manage-settings).
type UpdateSettingsInput struct {
	Actor        Actor
	SiteTitle    string
	Tagline      string
	ContactEmail string
	ContactPhone string
	Address      string
	SocialLinks  map[string]string
	JobsPerPage  int
	NewsPerPage  int
	Maintenance  bool
}

// SettingsService reads and writes site settings. Get is public.
type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, in UpdateSettingsInput) (*domain.Settings, error)
}

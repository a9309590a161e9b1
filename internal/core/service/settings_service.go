package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// SettingsService reads and writes the singleton site settings document.
type SettingsService struct {
	repo   ports.SettingsRepository
	logger zerolog.Logger
}

func NewSettingsService(repo ports.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the stored settings, falling back to defaults before an admin
// has saved any.
func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return domain.DefaultSettings(), nil
	}
	return stored, nil
}

// Update overwrites the settings document (requires manage-settings).
func (s *SettingsService) Update(ctx context.Context, in ports.UpdateSettingsInput) (*domain.Settings, error) {
	if !in.Actor.Can(domain.PermManageSettings) {
		return nil, domain.ErrForbidden
	}

	settings := &domain.Settings{
		SiteTitle:    in.SiteTitle,
		Tagline:      in.Tagline,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Address:      in.Address,
		SocialLinks:  in.SocialLinks,
		JobsPerPage:  in.JobsPerPage,
		NewsPerPage:  in.NewsPerPage,
		Maintenance:  in.Maintenance,
		UpdatedBy:    in.Actor.ID,
		UpdatedAt:    time.Now().UTC(),
	}
	if settings.JobsPerPage <= 0 {
		settings.JobsPerPage = 20
	}
	if settings.NewsPerPage <= 0 {
		settings.NewsPerPage = 20
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info().Str("updated_by", in.Actor.ID).Msg("site settings updated")
	return settings, nil
}

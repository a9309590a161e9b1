package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/ports"
)

// SettingsHandler exposes the singleton site settings.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type updateSettingsRequest struct {
	SiteTitle    string            `json:"site_title"    validate:"required"`
	Tagline      string            `json:"tagline"`
	ContactEmail string            `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string            `json:"contact_phone"`
	Address      string            `json:"address"`
	SocialLinks  map[string]string `json:"social_links"`
	JobsPerPage  int               `json:"jobs_per_page" validate:"omitempty,min=1,max=100"`
	NewsPerPage  int               `json:"news_per_page" validate:"omitempty,min=1,max=100"`
	Maintenance  bool              `json:"maintenance"`
}

// Get handles GET /v1/settings — public read.
//
// @Summary      Get site settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.Settings
// @Router       /v1/settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	s, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// Update handles PUT /v1/admin/settings.
//
// @Summary      Update site settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSettingsRequest  true  "New settings"
// @Success      200   {object}  domain.Settings
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/admin/settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s, err := h.service.Update(c.Request().Context(), ports.UpdateSettingsInput{
		Actor:        actor,
		SiteTitle:    req.SiteTitle,
		Tagline:      req.Tagline,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		SocialLinks:  req.SocialLinks,
		JobsPerPage:  req.JobsPerPage,
		NewsPerPage:  req.NewsPerPage,
		Maintenance:  req.Maintenance,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

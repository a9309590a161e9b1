package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type submitApplicationRequest struct {
	Name        string `json:"name"         validate:"required"`
	Email       string `json:"email"        validate:"required,email"`
	Phone       string `json:"phone"`
	ResumeURL   string `json:"resume_url"   validate:"required,url"`
	CoverLetter string `json:"cover_letter" validate:"max=2000"`
}

type reviewApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed shortlisted rejected"`
}

type applicationResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ResumeURL   string    `json:"resume_url"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

type listApplicationsResponse struct {
	Data       []applicationResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

func toApplicationResponse(a *domain.Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		ResumeURL:   a.ResumeURL,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt.UTC(),
	}
}

func toListApplicationsResponse(apps []*domain.Application, page ports.PageResult) listApplicationsResponse {
	items := make([]applicationResponse, len(apps))
	for i, a := range apps {
		items[i] = toApplicationResponse(a)
	}
	return listApplicationsResponse{Data: items, Pagination: toPagination(page)}
}

// Submit handles POST /v1/jobs/:id/applications.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Job id"
// @Param        body  body      submitApplicationRequest  true  "Application details"
// @Success      201   {object}  applicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req submitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.service.Submit(c.Request().Context(), ports.SubmitApplicationInput{
		Actor:       actor,
		JobID:       c.Param("id"),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// ListForJob handles GET /v1/jobs/:id/applications — job owner or admin only.
//
// @Summary      List applications for a job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Job id"
// @Param        status  query     string  false  "Status filter"
// @Success      200     {object}  listApplicationsResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [get]
func (h *ApplicationHandler) ListForJob(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	apps, page, err := h.service.ListForJob(c.Request().Context(), ports.ListJobApplicationsInput{
		Actor:  actor,
		JobID:  c.Param("id"),
		Status: domain.ApplicationStatus(c.QueryParam("status")),
		Page:   bindPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListApplicationsResponse(apps, page))
}

// ListOwn handles GET /v1/me/applications.
//
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listApplicationsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/applications [get]
func (h *ApplicationHandler) ListOwn(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	apps, page, err := h.service.ListOwn(c.Request().Context(), ports.ListOwnApplicationsInput{
		Actor: actor,
		Page:  bindPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListApplicationsResponse(apps, page))
}

// Review handles PATCH /v1/applications/:id — recruiter sets the status.
//
// @Summary      Review an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Application id"
// @Param        body  body      reviewApplicationRequest  true  "New status"
// @Success      200   {object}  applicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/applications/{id} [patch]
func (h *ApplicationHandler) Review(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req reviewApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.service.Review(c.Request().Context(), ports.ReviewApplicationInput{
		Actor:         actor,
		ApplicationID: c.Param("id"),
		Status:        domain.ApplicationStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

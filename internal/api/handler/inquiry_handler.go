package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// InquiryHandler handles the public contact form and the admin inquiry queue.
type InquiryHandler struct {
	service ports.InquiryService
}

func NewInquiryHandler(service ports.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

type createInquiryRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	Type    string `json:"type"    validate:"required,oneof=general jobs news advertise technical"`
}

type triageInquiryRequest struct {
	Status     *string `json:"status,omitempty"      validate:"omitempty,oneof=new in-progress resolved closed"`
	Priority   *string `json:"priority,omitempty"    validate:"omitempty,oneof=low medium high"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

type listInquiriesResponse struct {
	Data       []*domain.Inquiry  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Create handles POST /v1/inquiries — the public contact form.
//
// @Summary      Submit a contact inquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        body  body      createInquiryRequest  true  "Inquiry details"
// @Success      201   {object}  domain.Inquiry
// @Failure      400   {object}  errorResponse
// @Router       /v1/inquiries [post]
func (h *InquiryHandler) Create(c echo.Context) error {
	var req createInquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inq, err := h.service.Create(c.Request().Context(), ports.CreateInquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Type:    domain.InquiryType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inq)
}

// List handles GET /v1/admin/inquiries.
//
// @Summary      List inquiries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Status filter"
// @Param        type      query     string  false  "Type filter"
// @Param        priority  query     string  false  "Priority filter"
// @Success      200       {object}  listInquiriesResponse
// @Failure      403       {object}  errorResponse
// @Router       /v1/admin/inquiries [get]
func (h *InquiryHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	inqs, page, err := h.service.List(c.Request().Context(), ports.ListInquiriesInput{
		Actor: actor,
		Filter: ports.ListInquiriesFilter{
			Status:   domain.InquiryStatus(c.QueryParam("status")),
			Type:     domain.InquiryType(c.QueryParam("type")),
			Priority: domain.InquiryPriority(c.QueryParam("priority")),
			Page:     bindPage(c),
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listInquiriesResponse{Data: inqs, Pagination: toPagination(page)})
}

// Triage handles PATCH /v1/admin/inquiries/:id — direct admin edits.
//
// @Summary      Triage an inquiry
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Inquiry id"
// @Param        body  body      triageInquiryRequest  true  "Fields to change"
// @Success      200   {object}  domain.Inquiry
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/inquiries/{id} [patch]
func (h *InquiryHandler) Triage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req triageInquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.TriageInquiryInput{
		Actor:      actor,
		InquiryID:  c.Param("id"),
		AdminNotes: req.AdminNotes,
	}
	if req.Status != nil {
		s := domain.InquiryStatus(*req.Status)
		in.Status = &s
	}
	if req.Priority != nil {
		p := domain.InquiryPriority(*req.Priority)
		in.Priority = &p
	}

	inq, err := h.service.Triage(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inq)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// AccountHandler is the admin back-office over accounts.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active banned pending"`
}

type createAdminRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=editor super-admin"`
}

type listAccountsResponse struct {
	Data       []*domain.Account  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /v1/admin/accounts.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        kind    query     string  false  "Kind filter (user, admin)"
// @Param        status  query     string  false  "Status filter"
// @Param        role    query     string  false  "Role filter"
// @Success      200     {object}  listAccountsResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/admin/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	accounts, page, err := h.service.List(c.Request().Context(), ports.ListAccountsInput{
		Actor: actor,
		Filter: ports.ListAccountsFilter{
			Kind:   domain.AccountKind(c.QueryParam("kind")),
			Status: domain.AccountStatus(c.QueryParam("status")),
			Role:   domain.Role(c.QueryParam("role")),
			Page:   bindPage(c),
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAccountsResponse{Data: accounts, Pagination: toPagination(page)})
}

// AssignRole handles PUT /v1/admin/accounts/:id/role. The permission set is
// rewritten from the role table in the same update.
//
// @Summary      Assign a role to an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account id"
// @Param        body  body      assignRoleRequest  true  "New role"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/accounts/{id}/role [put]
func (h *AccountHandler) AssignRole(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	acc, err := h.service.AssignRole(c.Request().Context(), ports.AssignRoleInput{
		Actor:     actor,
		AccountID: c.Param("id"),
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, acc)
}

// SetStatus handles PUT /v1/admin/accounts/:id/status — ban or reactivate.
//
// @Summary      Set an account's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Account id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/accounts/{id}/status [put]
func (h *AccountHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	acc, err := h.service.SetStatus(c.Request().Context(), ports.SetAccountStatusInput{
		Actor:     actor,
		AccountID: c.Param("id"),
		Status:    domain.AccountStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, acc)
}

// CreateAdmin handles POST /v1/admin/accounts — super-admin creates staff.
//
// @Summary      Create an admin account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAdminRequest  true  "Admin account details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/accounts [post]
func (h *AccountHandler) CreateAdmin(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	acc, err := h.service.CreateAdmin(c.Request().Context(), ports.CreateAdminInput{
		Actor:    actor,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, acc)
}

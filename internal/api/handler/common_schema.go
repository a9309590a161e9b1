package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func toPagination(r ports.PageResult) paginationResponse {
	return paginationResponse{
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}

// bindPage reads the page/limit query parameters. Invalid values fall back to
// defaults in Page.Normalize.
func bindPage(c echo.Context) ports.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.Page{Number: page, Limit: limit}
}

package ports

import "github.com/apnajourney/platform/internal/core/domain"

// Actor identifies the authenticated caller of a service operation. It is
// assembled by the auth middleware from verified JWT claims; the core never
// re-derives identity or permissions itself.
type Actor struct {
	ID          string
	Kind        domain.AccountKind
	Role        domain.Role
	Permissions []domain.Permission
}

// Can reports whether the actor carries the given permission.
func (a Actor) Can(p domain.Permission) bool {
	for _, have := range a.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// Page normalises pagination input: 1-based page, limit defaulted to 20 and
// capped at 100.
type Page struct {
	Number int
	Limit  int
}

// Normalize returns the page with defaults and the cap applied.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// PageResult carries pagination metadata alongside a result set.
type PageResult struct {
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPageResult computes TotalPages from the normalised page and total count.
func NewPageResult(p Page, total int64) PageResult {
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return PageResult{Total: total, Page: p.Number, Limit: p.Limit, TotalPages: pages}
}

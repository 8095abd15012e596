package request

import "flight-booking/pkg/utils"

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PaginatedRequest carries the page and per_page query parameters of a
// listing endpoint. Out-of-range values are clamped rather than rejected.
type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// CurrentPage is Page clamped to at least 1.
func (p PaginatedRequest) CurrentPage() int {
	return max(p.Page, 1)
}

// Limit is PerPage clamped to [1, 100], defaulting to 10.
func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return defaultPerPage
	case p.PerPage > maxPerPage:
		return maxPerPage
	default:
		return p.PerPage
	}
}

// Offset uses the clamped limit so pages never overlap or skip rows.
func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.CurrentPage(), p.Limit())
}

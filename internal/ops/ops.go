package ops

import "strings"

// PageSize is the fixed page size for all listing and search pages
// (a 3-wide grid, 7 rows).
const PageSize = 21

// Pagination contains pagination metadata for list operations.
// Pages are 1-based; requesting a page past the end yields empty items.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes page metadata for a total match count.
func NewPagination(page, total int) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   PageSize,
		Total:      total,
		TotalPages: (total + PageSize - 1) / PageSize,
	}
}

// clampPage normalizes a requested page to at least 1.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// cleanOptionalString trims an optional string, dropping it entirely
// when blank.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

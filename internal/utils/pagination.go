// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

const (
	// DefaultPage is used when the page query parameter is absent or invalid.
	DefaultPage = 1
	// DefaultLimit is used when the limit query parameter is absent or invalid.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the client asks for.
	MaxLimit = 100
)

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// CoercePage normalizes raw page/limit values to positive integers.
// Non-positive or out-of-range values fall back to the defaults; limit is
// capped at MaxLimit. Out-of-range pages are legal and simply yield an empty
// result page, never an error.
func CoercePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// PageMeta carries pagination metadata for a single result page. The field
// names mirror the paginated envelope the frontend already consumes.
type PageMeta struct {
	TotalDocs   int64 `json:"totalDocs"`
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"totalPages"`
	HasPrevPage bool  `json:"hasPrevPage"`
	HasNextPage bool  `json:"hasNextPage"`
}

// NewPageMeta computes pagination metadata from a total row count and the
// already-coerced page/limit pair.
func NewPageMeta(total int64, page, limit int) PageMeta {
	page, limit = CoercePage(page, limit)
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasPrevPage: page > 1 && total > 0,
		HasNextPage: page < totalPages,
	}
}

// Offset returns the row offset for the coerced (page, limit) pair.
func Offset(page, limit int) int {
	page, limit = CoercePage(page, limit)
	return (page - 1) * limit
}

package domain

import (
	"fmt"
	"strings"

	"github.com/jnowak/users-service/internal/errs"
)

// SortDirection is the order applied to a sorted listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageQuery describes one zero-based page of a listing plus an optional sort.
// SortField is empty when no sort was requested; storage then falls back to
// insertion order.
type PageQuery struct {
	Page      int
	Size      int
	SortField string
	SortDir   SortDirection
}

// Offset returns the row offset for the query.
func (q PageQuery) Offset() int {
	return q.Page * q.Size
}

// Page is one bounded, ordered slice of a result set plus total-count
// metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage assembles a page envelope from the fetched slice and the total row
// count. Content is never nil so the JSON form is always an array.
func NewPage[T any](content []T, q PageQuery, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if q.Size > 0 {
		pages = int((total + int64(q.Size) - 1) / int64(q.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          q.Page,
		Size:          q.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// ParseSort parses a "field" or "field,direction" sort expression against a
// whitelist of sortable fields. Empty input yields an empty sort. Unknown
// fields and directions are client protocol errors.
func ParseSort(expr string, fields ...string) (string, SortDirection, error) {
	if expr == "" {
		return "", SortAsc, nil
	}

	field := expr
	dir := SortAsc
	if i := strings.IndexByte(expr, ','); i >= 0 {
		field = expr[:i]
		switch strings.ToLower(expr[i+1:]) {
		case "asc", "":
			dir = SortAsc
		case "desc":
			dir = SortDesc
		default:
			return "", "", errs.NewBadRequestError("Validation failed", nil, []errs.FieldError{
				{Field: "sort", Error: "direction must be asc or desc"},
			})
		}
	}

	for _, f := range fields {
		if field == f {
			return field, dir, nil
		}
	}
	return "", "", errs.NewBadRequestError("Validation failed", nil, []errs.FieldError{
		{Field: "sort", Error: fmt.Sprintf("must be one of: %s", strings.Join(fields, ", "))},
	})
}

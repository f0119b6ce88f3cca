package model

import (
	"math"
	"strings"
)

// Paging limits shared by every list endpoint
const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*page_size inside int32
	MaxPage = math.MaxInt32 / MaxPageSize
)

// SortDir is the direction of a list ordering
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ListQuery carries the search, sort, filter and paging inputs of a list screen
type ListQuery struct {
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Search   string  `json:"search,omitempty"`
	SortBy   string  `json:"sort_by,omitempty"`
	SortDir  SortDir `json:"sort_dir,omitempty"`
	Filter   string  `json:"filter,omitempty"`
}

// Normalize applies defaults and clamps paging. Sort columns are checked
// against each table's whitelist by the repository.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	q.SortBy = strings.TrimSpace(q.SortBy)
	q.Filter = strings.TrimSpace(q.Filter)
	switch SortDir(strings.ToLower(string(q.SortDir))) {
	case SortAsc:
		q.SortDir = SortAsc
	case SortDesc:
		q.SortDir = SortDesc
	default:
		q.SortDir = ""
	}
	return q
}

// Offset returns the number of rows to skip for the requested page.
// It never goes negative, even for a query that was not normalized.
func (q ListQuery) Offset() int {
	if q.Page < 1 || q.PageSize < 1 {
		return 0
	}
	return (min(q.Page, MaxPage) - 1) * min(q.PageSize, MaxPageSize)
}

// Page is one page of a list result
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPage builds a page from the rows of a normalized query
func NewPage[T any](items []T, total int, q ListQuery) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if q.PageSize > 0 {
		totalPages = (total + q.PageSize - 1) / q.PageSize
	}
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}
}

package repository

// Pagination describes the page metadata returned alongside every
// paginated collection so clients can render page controls without a
// second count request.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination computes page metadata for a page/limit pair and a total
// row count.  TotalPages is the ceiling of total/limit; an empty result
// set has zero pages.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalCount:  total,
		HasNextPage: int64(page*limit) < total,
		HasPrevPage: page > 1,
	}
}

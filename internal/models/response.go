package models

// Response is the envelope returned by every endpoint.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Token      string `json:"token,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// Pagination describes one page of a list endpoint.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination computes page bookkeeping from the requested page/limit, the
// total row count and the number of rows actually fetched for this page.
func NewPagination(page, limit int, total int64, fetched int) Pagination {
	if limit < 1 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	skip := int64(page-1) * int64(limit)
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalOrders: total,
		HasNextPage: skip+int64(fetched) < total,
		HasPrevPage: page > 1,
	}
}

type PagedOrders struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

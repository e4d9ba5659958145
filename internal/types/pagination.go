package types

// PaginationResponse echoes the applied limit and offset. Total counts the
// items in the returned page, not the rows matching the filter overall.
type PaginationResponse struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResponse is the generic envelope for list endpoints.
type ListResponse[T any] struct {
	Items      []T                `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

package dto

import "math"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// EmptyResponse is returned by delete endpoints
type EmptyResponse struct{}

// Pagination query defaults
const (
	DefaultPage          = 1
	DefaultNumberPerPage = 20
)

// PageRequest holds validated pagination parameters
type PageRequest struct {
	Page          int
	NumberPerPage int
}

// Offset returns the number of rows to skip. Pages beyond the int range
// saturate at math.MaxInt so they read as past the end.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.NumberPerPage <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.NumberPerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.NumberPerPage
}

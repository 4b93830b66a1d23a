package planning

import "fmt"

// StatusCodeError is an error that occurs when the planning data
// API returns an unexpected status code for a request.
type StatusCodeError struct {
	StatusCode int    `json:"status"`
	Detail     string `json:"detail"`
}

func (s *StatusCodeError) Error() string {
	return fmt.Sprintf("invalid status code (StatusCode: %d, Detail: %s)", s.StatusCode, s.Detail)
}

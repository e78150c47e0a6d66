package types

import "time"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// NewErrorResponse stamps msg with the current UTC time
func NewErrorResponse(status int, msg string) ErrorResponse {
	return ErrorResponse{
		Status:    status,
		Error:     msg,
		Timestamp: time.Now().UTC(),
	}
}

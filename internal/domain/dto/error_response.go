package dto

import "time"

// ErrorResponse is the JSON body returned for every failed request.
//
// Example:
//
//	{
//	  "message": "invalid request",
//	  "error_details": "dateFrom must be less or equal to dateTo",
//	  "timestamp": "2022-01-31T10:00:00Z"
//	}
type ErrorResponse struct {
	Message      string    `json:"message" example:"prices not found for given criteria"`
	ErrorDetails string    `json:"error_details,omitempty" example:"no records in window"`
	Timestamp    time.Time `json:"timestamp" example:"2022-01-31T10:00:00Z"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// When err is non-nil its message is copied into ErrorDetails.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// Error implements the error interface so the response can travel through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

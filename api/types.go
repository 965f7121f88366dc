package api

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Not Found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"prize_pool_details"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

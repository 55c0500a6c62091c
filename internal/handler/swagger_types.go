package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ErrorResponseBody represents a failed API response.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// MessageData is the payload of acknowledgement responses.
type MessageData struct {
	Message string `json:"message" example:"upload reset"`
}
